// Package series resolves one ScanImage acquisition from the file a user
// opened. A Session reads the first page's comment, derives axis sizes,
// checks the filename convention, lists the sibling files that make up the
// acquisition and looks for an optional sidecar, producing a Descriptor.
//
// Every inconsistency short of an unreadable primary file or directory
// degrades the result to single-file mode instead of failing the open.
package series
