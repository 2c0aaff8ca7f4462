// Command discshelf organizes a disc-image library: it groups multi-disc
// titles into per-title directories, keeps cue sheets and playlists
// consistent, and audits the result.
package main
