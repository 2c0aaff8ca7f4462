// Package playlist creates, repairs, and audits per-title m3u playlists.
//
// A playlist lists the master discs of one multi-disc title, one file name
// per line, sorted ascending and newline-terminated. Data tracks never
// appear in playlists.
package playlist
