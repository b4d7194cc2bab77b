package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/dkadlec/face-lounge/internal/recognition"
)

// RecognitionService runs registration and recognition attempts.
type RecognitionService interface {
	Register(ctx context.Context, draft recognition.ProfileDraft, image []byte) (*recognition.Outcome, error)
	Recognize(ctx context.Context, image []byte) (*recognition.Outcome, error)
}

// RecognitionHandler handles face registration and recognition endpoints.
type RecognitionHandler struct {
	workflow RecognitionService
}

// NewRecognitionHandler creates a new recognition handler.
func NewRecognitionHandler(workflow RecognitionService) *RecognitionHandler {
	return &RecognitionHandler{workflow: workflow}
}

// readImageFile extracts the uploaded face image from the multipart form.
func readImageFile(r *http.Request) ([]byte, error) {
	file, _, err := r.FormFile("image")
	if err != nil {
		return nil, errors.New("image file is required")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.New("failed to read image file")
	}
	if len(data) == 0 {
		return nil, errors.New("image file is empty")
	}
	return data, nil
}

// Register handles POST /api/v1/faces/register. It accepts a multipart
// form with an image file and the profile fields name, age and gender.
// The workflow outcome is always returned with status 200; only request
// level problems map to error status codes.
func (h *RecognitionHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	age, err := strconv.Atoi(r.FormValue("age"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "age must be a number")
		return
	}

	draft := recognition.ProfileDraft{
		Name:   r.FormValue("name"),
		Age:    age,
		Gender: r.FormValue("gender"),
	}

	image, err := readImageFile(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	outcome, err := h.workflow.Register(r.Context(), draft, image)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, outcome)
}

// Recognize handles POST /api/v1/faces/recognize. It accepts a multipart
// form with an image file and returns the match outcome.
func (h *RecognitionHandler) Recognize(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	image, err := readImageFile(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	outcome, err := h.workflow.Recognize(r.Context(), image)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, outcome)
}

// respondWorkflowError maps the workflow's submission errors to HTTP
// status codes. Validation problems are the caller's fault; a busy
// workflow asks the caller to retry later.
func respondWorkflowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, recognition.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, recognition.ErrBusy):
		respondError(w, http.StatusConflict, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
