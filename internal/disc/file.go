// Package disc models disc-image files and enumerates them under a library
// root.
package disc

import (
	"path/filepath"
	"strings"

	"discshelf/internal/title"
)

// Kind classifies a supported file for relocation dispatch.
type Kind int

const (
	// KindCue is a cue sheet referencing sibling track files.
	KindCue Kind = iota
	// KindImage is a standalone disc image (iso, img, chd, pbp).
	KindImage
	// KindTrack is a raw data/audio track only meaningful beside a cue sheet.
	KindTrack
	// KindPlaylist is an m3u playlist.
	KindPlaylist
)

func (k Kind) String() string {
	switch k {
	case KindCue:
		return "cue"
	case KindImage:
		return "image"
	case KindTrack:
		return "track"
	case KindPlaylist:
		return "playlist"
	default:
		return "unknown"
	}
}

// PlaylistExt is the extension of generated playlists, including the dot.
const PlaylistExt = ".m3u"

// masterExts are extensions representing a full disc; only these appear in
// playlists.
var masterExts = map[string]struct{}{
	"cue": {}, "iso": {}, "img": {}, "chd": {},
}

// supportedExts maps every recognized disc-file extension to its kind.
var supportedExts = map[string]Kind{
	"cue": KindCue,
	"iso": KindImage,
	"img": KindImage,
	"chd": KindImage,
	"pbp": KindImage,
	"bin": KindTrack,
	"wav": KindTrack,
	"m3u": KindPlaylist,
}

// File is a transient view of one disc file on disk. Only Path changes after
// discovery, and only through relocation.
type File struct {
	Path string // absolute path
	Dir  string // containing directory
	Base string // file name without extension
	Ext  string // lowercased extension without the dot
	Kind Kind
}

// New classifies path as a disc file. The second return is false for
// unsupported extensions.
func New(path string) (File, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	kind, ok := supportedExts[ext]
	if !ok {
		return File{}, false
	}
	name := filepath.Base(path)
	return File{
		Path: path,
		Dir:  filepath.Dir(path),
		Base: strings.TrimSuffix(name, filepath.Ext(name)),
		Ext:  ext,
		Kind: kind,
	}, true
}

// Name returns the file name including extension.
func (f File) Name() string {
	return filepath.Base(f.Path)
}

// IsMaster reports whether the file is a full-disc image rather than a data
// track.
func (f File) IsMaster() bool {
	_, ok := masterExts[f.Ext]
	return ok
}

// Title returns the canonical grouping title for the file.
func (f File) Title() string {
	return title.Canonical(f.Base)
}

// IsMasterExt reports whether a bare extension (without dot, any case) names
// a master disc image.
func IsMasterExt(ext string) bool {
	_, ok := masterExts[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return ok
}
