// Package recognition orchestrates the face registration and recognition
// runs: upload, describe, persist or match, present. All recognition logic
// is delegated to external services; this package only sequences the calls
// and classifies their failures.
package recognition

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/dkadlec/face-lounge/internal/ai"
	"github.com/dkadlec/face-lounge/internal/store"
)

// uploadFileName is the name under which captured frames are stored.
const uploadFileName = "face.jpg"

// Uploader sends an image to the file storage service and returns its URL.
type Uploader interface {
	UploadFile(ctx context.Context, fileName string, data []byte) (string, error)
}

// ProfileDraft holds the user-submitted registration fields. All fields are
// required; validation happens locally before any network call.
type ProfileDraft struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

// Validate checks the draft fields and returns an ErrValidation-classified
// error naming the first problem found.
func (d *ProfileDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if d.Age <= 0 {
		return fmt.Errorf("%w: age must be a positive number", ErrValidation)
	}
	if _, err := store.ParseGender(d.Gender); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// Workflow runs registration and recognition attempts. Only one submission
// may be in flight per instance; concurrent calls fail with ErrBusy.
type Workflow struct {
	uploader Uploader
	provider ai.Provider
	profiles store.ProfileStore

	mu   sync.Mutex
	busy bool
}

// New creates a recognition workflow.
func New(uploader Uploader, provider ai.Provider, profiles store.ProfileStore) *Workflow {
	return &Workflow{
		uploader: uploader,
		provider: provider,
		profiles: profiles,
	}
}

// acquire marks the workflow busy, or reports ErrBusy if a submission is
// already in flight.
func (w *Workflow) acquire() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.busy {
		return ErrBusy
	}
	w.busy = true
	return nil
}

func (w *Workflow) release() {
	w.mu.Lock()
	w.busy = false
	w.mu.Unlock()
}

// Register uploads the captured image, obtains a face description and
// persists a new profile from the draft. Steps are strictly ordered; a
// failure at any step aborts before persistence, so no partial profile is
// ever stored. External failures are converted into a failure outcome.
// Only draft validation and the busy guard surface as errors.
func (w *Workflow) Register(ctx context.Context, draft ProfileDraft, image []byte) (*Outcome, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if err := w.acquire(); err != nil {
		return nil, err
	}
	defer w.release()

	imageURL, err := w.uploader.UploadFile(ctx, uploadFileName, image)
	if err != nil {
		log.Printf("registration: upload failed: %v", err)
		return failureOutcome(msgRegisterFailed, fmt.Errorf("%w: %v", ErrUpload, err)), nil
	}

	desc, err := w.provider.DescribeFace(ctx, image)
	if err != nil {
		log.Printf("registration: describe failed: %v", err)
		return failureOutcome(msgRegisterFailed, fmt.Errorf("%w: %v", ErrDescription, err)), nil
	}

	gender, _ := store.ParseGender(draft.Gender) // validated above
	profile := &store.Profile{
		Name:            strings.TrimSpace(draft.Name),
		Age:             draft.Age,
		Gender:          gender,
		FaceImageURL:    imageURL,
		FaceDescription: desc.Description,
	}

	if err := w.profiles.CreateProfile(ctx, profile); err != nil {
		log.Printf("registration: persist failed: %v", err)
		return failureOutcome(msgRegisterFailed, fmt.Errorf("%w: %v", ErrPersistence, err)), nil
	}

	return successOutcome(msgRegistered, profile, ""), nil
}

// Recognize uploads the captured image and matches its description against
// the registered profiles. The match index the model returns is resolved
// against the same ordered list fetched in this run; the list is assumed
// not to change between the two calls; profiles are append-only, so a
// registration landing in between can only add entries past the end of
// the list in use. Out-of-range or negative indices produce a "not
// recognized" failure outcome.
func (w *Workflow) Recognize(ctx context.Context, image []byte) (*Outcome, error) {
	if err := w.acquire(); err != nil {
		return nil, err
	}
	defer w.release()

	// The stored copy is kept by the upload service; recognition itself
	// works on the image bytes.
	if _, err := w.uploader.UploadFile(ctx, uploadFileName, image); err != nil {
		log.Printf("recognition: upload failed: %v", err)
		return failureOutcome(msgRecognizeError, fmt.Errorf("%w: %v", ErrUpload, err)), nil
	}

	profiles, err := w.profiles.ListProfiles(ctx)
	if err != nil {
		log.Printf("recognition: list profiles failed: %v", err)
		return failureOutcome(msgRecognizeError, fmt.Errorf("%w: %v", ErrPersistence, err)), nil
	}

	// Fast-fail: nothing to match against, skip the inference calls.
	if len(profiles) == 0 {
		return failureOutcome(msgNoProfiles, ErrNoProfiles), nil
	}

	desc, err := w.provider.DescribeFace(ctx, image)
	if err != nil {
		log.Printf("recognition: describe failed: %v", err)
		return failureOutcome(msgRecognizeError, fmt.Errorf("%w: %v", ErrDescription, err)), nil
	}

	registered := make([]string, len(profiles))
	for i := range profiles {
		registered[i] = profiles[i].FaceDescription
	}

	match, err := w.provider.MatchFace(ctx, desc.Description, registered)
	if err != nil {
		log.Printf("recognition: match failed: %v", err)
		return failureOutcome(msgRecognizeError, fmt.Errorf("%w: %v", ErrMatch, err)), nil
	}

	// The model's index is an untrusted suggestion; bounds check strictly.
	if match.MatchIndex >= 0 && match.MatchIndex < len(profiles) {
		matched := profiles[match.MatchIndex]
		return successOutcome(msgRecognized, &matched, match.Confidence), nil
	}

	return failureOutcome(msgNotRecognized, nil), nil
}
