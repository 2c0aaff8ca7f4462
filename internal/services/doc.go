// Package services defines the shared error taxonomy used across the
// discshelf pipeline stages.
package services
