package probe

import "time"

// Defaults applied by Config.withDefaults.
const (
	DefaultBaseURL      = "http://localhost:9080"
	DefaultRounds       = 1
	DefaultWorkers      = 4
	DefaultTimeout      = 10 * time.Second
	DefaultReplyTimeout = 15 * time.Second
	DefaultPollInterval = 200 * time.Millisecond
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)
