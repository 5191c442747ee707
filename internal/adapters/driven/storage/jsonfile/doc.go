// Package jsonfile persists raw snapshots and topology outputs as
// pretty-printed JSON files in a single output directory.
//
// Files are written atomically: content goes to a temporary file in the
// same directory which is then renamed over the target, so a watcher never
// observes a half-written snapshot.
package jsonfile
