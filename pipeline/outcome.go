package pipeline

import "fmt"

// Status is the terminal state of one record's pass through the stages.
type Status int

const (
	StatusPersisted Status = iota
	StatusRejected
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPersisted:
		return "persisted"
	case StatusRejected:
		return "rejected"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// ReasonDuplicateURL rejects a URL already observed in the current run.
const ReasonDuplicateURL = "duplicate-url"

// MissingFieldReason builds the rejection reason for a required field that
// survived normalization with no value.
func MissingFieldReason(field string) string {
	return fmt.Sprintf("missing-required-field:%s", field)
}

// Outcome is the single terminal result of processing one raw record.
// Exactly one of ID, Reason, or Err is meaningful, selected by Status.
type Outcome struct {
	Status Status
	ID     string
	Reason string
	Err    error
}

// Persisted marks a record durably written under the given identity.
func Persisted(id string) Outcome {
	return Outcome{Status: StatusPersisted, ID: id}
}

// Rejected marks a record dropped by validation or deduplication.
// Rejections are ordinary outcomes, not errors; the run continues.
func Rejected(reason string) Outcome {
	return Outcome{Status: StatusRejected, Reason: reason}
}

// Failed marks a record lost to a storage-level error.
func Failed(err error) Outcome {
	return Outcome{Status: StatusFailed, Err: err}
}
