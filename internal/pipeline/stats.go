package pipeline

// RunStats tracks aggregate counters and byte totals across a batch run.
type RunStats struct {
	Total      int // TIFF files discovered
	Current    int
	Series     int // descriptors produced
	Grouped    int
	Single     int
	Covered    int // files skipped because an earlier series listed them
	Skipped    int // files that are not ScanImage TIFFs
	Failed     int
	TotalBytes int64
}
