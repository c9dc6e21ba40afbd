package main

import "time"

var ReplayStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
var ReplayEnd = time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)

const (
	RouterEventCapacity = 100
	DataSource          = "data/series_samples.bin"
	Symbol              = "series"
	MonitorLogEvery     = 100_000
)
