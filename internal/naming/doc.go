// Package naming validates ScanImage file names and synthesizes the names of
// the sibling files that make up a multi-file acquisition.
//
// Filename convention:
//
//	<prefix>_<suffix>.<tif|tiff>
//
// where <suffix> is a non-negative base-10 integer with no leading '+' or
// sign. ScanImage usually zero pads it (stack_00003.tif); the padding width
// is kept when sibling names are synthesized.
//
// Files:
//   - parser.go: SplitName, Parts
//   - validate.go: ExpectedSuffix, Validate and the naming errors
//   - enumerate.go: Enumerate, the ordered sibling list
package naming
