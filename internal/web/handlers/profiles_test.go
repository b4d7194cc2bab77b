package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dkadlec/face-lounge/internal/store"
	"github.com/dkadlec/face-lounge/internal/store/mock"
)

func TestProfilesList(t *testing.T) {
	profiles := mock.NewMockProfileStore()
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	profiles.AddProfile(store.Profile{
		Name: "Ada", Age: 34, Gender: store.GenderFemale,
		FaceImageURL: "url1", FaceDescription: "round face",
		CreatedAt: base,
	})
	profiles.AddProfile(store.Profile{
		Name: "Bob", Age: 41, Gender: store.GenderMale,
		FaceImageURL: "url2", FaceDescription: "square jaw",
		CreatedAt: base.Add(time.Minute),
	})

	handler := NewProfilesHandler(profiles)
	recorder := httptest.NewRecorder()
	handler.List(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/profiles", nil))

	assertStatusCode(t, recorder, http.StatusOK)

	var result []store.Profile
	parseJSONResponse(t, recorder, &result)

	if len(result) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(result))
	}
	// Oldest-first order.
	if result[0].Name != "Ada" || result[1].Name != "Bob" {
		t.Errorf("unexpected profile order: %s, %s", result[0].Name, result[1].Name)
	}
	if result[0].FaceDescription != "round face" {
		t.Errorf("expected face description in response, got %q", result[0].FaceDescription)
	}
}

func TestProfilesList_Empty(t *testing.T) {
	handler := NewProfilesHandler(mock.NewMockProfileStore())
	recorder := httptest.NewRecorder()
	handler.List(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/profiles", nil))

	assertStatusCode(t, recorder, http.StatusOK)

	// An empty store yields an empty JSON array, not null.
	if body := recorder.Body.String(); body != "[]\n" {
		t.Errorf("expected empty array, got %q", body)
	}
}

func TestProfilesList_StoreError(t *testing.T) {
	profiles := mock.NewMockProfileStore()
	profiles.ListError = errors.New("connection refused")

	handler := NewProfilesHandler(profiles)
	recorder := httptest.NewRecorder()
	handler.List(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/profiles", nil))

	assertStatusCode(t, recorder, http.StatusInternalServerError)
	assertJSONError(t, recorder, "failed to list profiles")
}
