package domain

const (
	// DefaultFailureThreshold is the failure counter limit used when none is configured.
	DefaultFailureThreshold = 3

	// DefaultRecordSeparator splits decoder metadata from the message text in a record line.
	DefaultRecordSeparator = "~"
)
