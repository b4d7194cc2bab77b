package recognition

import "errors"

// Failure classification for one workflow run. Every external-call failure
// is wrapped with one of these sentinels before it is converted into a
// failure outcome, so callers and tests can classify with errors.Is.
var (
	// ErrValidation means required draft fields were missing or invalid.
	// Raised locally, before any network call.
	ErrValidation = errors.New("validation failed")

	// ErrUpload means the upload service was unreachable or rejected the image.
	ErrUpload = errors.New("upload failed")

	// ErrDescription means the describe call timed out or returned garbage.
	ErrDescription = errors.New("face description failed")

	// ErrMatch means the match call failed.
	ErrMatch = errors.New("face match failed")

	// ErrPersistence means the profile store rejected a read or write.
	ErrPersistence = errors.New("profile store failed")

	// ErrNoProfiles is the fast-fail raised when recognition runs against
	// an empty profile store. Not a true error; no describe or match call
	// is made.
	ErrNoProfiles = errors.New("no registered profiles")

	// ErrBusy means another submission is already in flight on this
	// workflow instance.
	ErrBusy = errors.New("a submission is already in progress")
)
