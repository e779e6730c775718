// Package pipeline discovers TIFF files, resolves each acquisition once and
// collects printable reports with batch counters.
//
// Files are processed sequentially in lexicographic order. A file already
// listed by an earlier grouped descriptor is skipped, so opening any member
// of a series resolves the whole series exactly once.
package pipeline
