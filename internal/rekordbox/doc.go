// Package rekordbox assembles and serializes the destination XML document.
//
// [TranslateCues] converts Mixxx cue markers into memory-cue positions,
// [BuildDocument] assembles the DJ_PLAYLISTS tree (track catalog plus
// playlist nodes) from an extracted library and a resolved export set, and
// [WriteFile] renders it atomically to disk.
//
// A note on cue timing: rekordbox re-derives sample positions for compressed
// audio from the codec's own seek tables, which introduces roughly 10–50 ms
// of drift independent of anything in the exported file. The translator does
// not try to compensate; any correcting constant would depend on the track
// and encoder, and the error originates downstream of the export.
package rekordbox
