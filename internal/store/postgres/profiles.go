package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dkadlec/face-lounge/internal/store"
	"github.com/google/uuid"
)

// ProfileRepository provides PostgreSQL-backed profile storage.
type ProfileRepository struct {
	pool *Pool
}

// NewProfileRepository creates a new PostgreSQL profile repository.
func NewProfileRepository(pool *Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// CreateProfile stores a new profile and fills in its ID and CreatedAt.
func (r *ProfileRepository) CreateProfile(ctx context.Context, profile *store.Profile) error {
	profile.ID = uuid.NewString()
	profile.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO profiles (id, name, age, gender, face_image_url, face_description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		profile.ID,
		profile.Name,
		profile.Age,
		string(profile.Gender),
		profile.FaceImageURL,
		profile.FaceDescription,
		profile.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// ListProfiles returns all profiles ordered oldest-first. The (created_at, id)
// ordering is deterministic so positions stay stable between sequential calls.
func (r *ProfileRepository) ListProfiles(ctx context.Context) ([]store.Profile, error) {
	query := `
		SELECT id, name, age, gender, face_image_url, face_description, created_at
		FROM profiles
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []store.Profile
	for rows.Next() {
		var p store.Profile
		var gender string
		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &gender, &p.FaceImageURL, &p.FaceDescription, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		p.Gender = store.Gender(gender)
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}

	return profiles, nil
}
