// Package tasks implements the export pipeline over an extracted library.
//
// The core abstraction is [ExportEngine], which orchestrates one run:
// extract → select → build → write. [ResolveExportSet] applies the selection
// policy (playlist include list, crate exclude list, default playlists) and
// fixes each collection's final track order before any document is built, so
// a bad request aborts before the destination file is touched.
package tasks
