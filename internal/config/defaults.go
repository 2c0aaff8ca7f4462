package config

// Default returns the baseline configuration used before any file overrides.
func Default() Config {
	return Config{
		Library: Library{
			Root: ".",
		},
		Organize: Organize{
			Recurse: false,
			Preview: false,
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}
