// Package comment parses the free-text metadata block that ScanImage embeds
// in every TIFF it writes (the ImageDescription tag of the first page).
//
// The block is a sequence of "key = value" lines with dotted keys such as
// scanimage.SI.hStackManager.numSlices. Lines without '=' are ordinary text
// and are skipped. Keys and values are trimmed of surrounding whitespace.
package comment
