// Package models defines domain entities for the Mixxx → rekordbox export pipeline.
//
// The package contains three categories of types:
//
// 1. Source entities: Normalized records read from the Mixxx library database
//   - [Track] : Track metadata with file location and cue markers
//   - [CuePoint] : A marked position within a track, in source sample units
//   - [Collection] : A named crate or playlist with its track membership
//   - [Library] : The complete extracted library for one export run
//
// 2. Export planning: The resolved shape of one run
//   - [ExportSet] : The finalized, ordered list of collections to export
//   - [ResolvedCollection] : One collection with its final track order
//   - [SortOrder] : BPM sort policy (none, ascending, descending)
//
// 3. Helpers: [Optional] models nullable source columns explicitly so that
// absent values are never confused with empty strings or zero.
package models
