package handlers

import (
	"log"
	"net/http"

	"github.com/dkadlec/face-lounge/internal/store"
)

// ProfilesHandler handles registered profile endpoints.
type ProfilesHandler struct {
	profiles store.ProfileStore
}

// NewProfilesHandler creates a new profiles handler.
func NewProfilesHandler(profiles store.ProfileStore) *ProfilesHandler {
	return &ProfilesHandler{profiles: profiles}
}

// List handles GET /api/v1/profiles. Profiles are returned oldest-first,
// in the same stable order recognition uses.
func (h *ProfilesHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.ListProfiles(r.Context())
	if err != nil {
		log.Printf("failed to list profiles: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to list profiles")
		return
	}

	if profiles == nil {
		profiles = []store.Profile{}
	}
	respondJSON(w, http.StatusOK, profiles)
}
