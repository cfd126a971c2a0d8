package domain

// RecordError represents a per-record error during a batch load.
type RecordError struct {
	Row    int    `json:"row"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// BatchResult represents the result of loading a batch of article inputs,
// as done by the seed and feed import commands.
type BatchResult struct {
	SuccessCount int           `json:"success_count"`
	FailedCount  int           `json:"failed_count"`
	Created      []string      `json:"created,omitempty"`
	Errors       []RecordError `json:"errors,omitempty"`
}
