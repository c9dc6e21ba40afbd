package main

import "time"

var IngestStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
var IngestEnd = time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)

const (
	Database         = "data/series.duckdb"
	Symbol           = "series"
	OutputDataSource = "data/series_samples.bin"
)
