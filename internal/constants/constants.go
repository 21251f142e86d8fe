// Package constants provides shared configuration values used across the ktail application.
package constants

import "time"

// Configuration file defaults
const (
	// DefaultConfigFile is the default configuration filename
	DefaultConfigFile = "ktail.yaml"
)

// Streaming defaults
const (
	// DefaultHistorySize is the number of messages retained for search
	DefaultHistorySize = 1000

	// DefaultChannelCapacity bounds the shared worker channel; a full
	// channel stalls producers rather than growing memory
	DefaultChannelCapacity = 100

	// DefaultTick is the control loop polling interval; it keeps the
	// footer responsive even with no log traffic
	DefaultTick = 50 * time.Millisecond

	// DefaultTailLines is how many historical lines each stream starts with
	DefaultTailLines = 10
)

// Scanner buffer sizes for log line reading
const (
	// ScannerBufferSize is the initial buffer size for log line scanning
	ScannerBufferSize = 64 * 1024 // 64KB

	// ScannerMaxBufferSize is the maximum buffer size for log line scanning
	ScannerMaxBufferSize = 1024 * 1024 // 1MB
)

// Inventory lookups
const (
	// PodListConcurrency caps parallel per-namespace pod list calls
	PodListConcurrency = 8

	// DescribeEventCount is how many recent events the describe report shows
	DescribeEventCount = 5
)
