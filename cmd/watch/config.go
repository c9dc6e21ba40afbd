package main

const (
	FeedURL             = "ws://localhost:8080/samples"
	RouterEventCapacity = 1024
	SubscriptionBuffer  = 256
	MonitorLogEvery     = 1_000
)
