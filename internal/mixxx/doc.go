// Package mixxx reads a Mixxx library database into normalized domain entities.
//
// [Source] is the narrow read-only contract the rest of the pipeline depends
// on; [SQLiteSource] implements it over the real mixxx.sqlite file, and tests
// substitute in-memory fixtures. [Extract] assembles one [models.Library]
// from a Source, attaching cue markers to their owning tracks and dropping
// membership rows that reference tracks missing from the library table.
package mixxx
