package store

import (
	"fmt"
	"time"
)

// Gender is the registered gender of a profile.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// ParseGender validates a gender value.
func ParseGender(s string) (Gender, error) {
	switch Gender(s) {
	case GenderMale, GenderFemale, GenderOther:
		return Gender(s), nil
	}
	return "", fmt.Errorf("invalid gender %q (must be Male, Female or Other)", s)
}

// Profile is a registered identity record. The image URL and face
// description are set together at creation and never mutated afterward.
type Profile struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Age             int       `json:"age"`
	Gender          Gender    `json:"gender"`
	FaceImageURL    string    `json:"face_image_url"`
	FaceDescription string    `json:"face_description"`
	CreatedAt       time.Time `json:"created_at"`
}

// Message is a single chat message. Messages are immutable once created.
type Message struct {
	ID         string    `json:"id"`
	SenderName string    `json:"sender_name"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}
