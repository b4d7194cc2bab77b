package recognition

import "github.com/dkadlec/face-lounge/internal/store"

// Status classifies the end state of one workflow run.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// User-facing result messages.
const (
	msgRegistered     = "Face registered successfully!"
	msgRegisterFailed = "Failed to register face. Please try again."
	msgRecognized     = "Face recognized!"
	msgNotRecognized  = "Face not recognized. Please register first."
	msgNoProfiles     = "No registered faces found. Please register first."
	msgRecognizeError = "Failed to recognize face. Please try again."
)

// Outcome is the transient result of one registration or recognition run.
// It is produced at the end of a run, presented, and discarded.
type Outcome struct {
	Status     Status         `json:"status"`
	Message    string         `json:"message"`
	Profile    *store.Profile `json:"profile,omitempty"`
	Confidence string         `json:"confidence,omitempty"`

	// Err carries the classified cause for failure outcomes. Nil on
	// success and on the plain "not recognized" result.
	Err error `json:"-"`
}

// Succeeded reports whether the run ended in a success outcome.
func (o *Outcome) Succeeded() bool {
	return o.Status == StatusSuccess
}

func successOutcome(message string, profile *store.Profile, confidence string) *Outcome {
	return &Outcome{
		Status:     StatusSuccess,
		Message:    message,
		Profile:    profile,
		Confidence: confidence,
	}
}

func failureOutcome(message string, err error) *Outcome {
	return &Outcome{
		Status:  StatusError,
		Message: message,
		Err:     err,
	}
}
