package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mayaandrob/invite-api/internal/models"
)

// FileStore keeps the whole collection in one JSON document. Every mutation
// reads the document, applies the change and rewrites it. The mutex only
// covers writers within this process; there is no cross-process locking,
// which is acceptable for a single small event.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by the JSON document at path. The
// document is created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

type rsvpDocument struct {
	RSVPs []models.RSVP `json:"rsvps"`
}

// load reads the full document. A missing or unreadable document is treated
// as an empty collection.
func (s *FileStore) load() []models.RSVP {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return []models.RSVP{}
	}
	var doc rsvpDocument
	if err := json.Unmarshal(data, &doc); err != nil || doc.RSVPs == nil {
		return []models.RSVP{}
	}
	return doc.RSVPs
}

func (s *FileStore) save(rsvps []models.RSVP) error {
	data, err := json.MarshalIndent(rsvpDocument{RSVPs: rsvps}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rsvps: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) ListRSVPs(ctx context.Context) ([]models.RSVP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

func (s *FileStore) CreateRSVP(ctx context.Context, fields models.RSVPFields) (*models.RSVP, error) {
	fields.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	rsvps := s.load()
	rsvp := models.RSVP{
		ID:         uuid.NewString(),
		RSVPFields: fields,
		CreatedAt:  time.Now().UTC(),
	}
	rsvps = append(rsvps, rsvp)
	if err := s.save(rsvps); err != nil {
		return nil, err
	}
	return &rsvp, nil
}

func (s *FileStore) UpdateRSVP(ctx context.Context, id string, fields models.RSVPFields) (*models.RSVP, error) {
	fields.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	rsvps := s.load()
	for i := range rsvps {
		if rsvps[i].ID == id {
			rsvps[i].RSVPFields = fields
			if err := s.save(rsvps); err != nil {
				return nil, err
			}
			rsvp := rsvps[i]
			return &rsvp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) DeleteRSVP(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rsvps := s.load()
	filtered := rsvps[:0:0]
	for _, r := range rsvps {
		if r.ID != id {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == len(rsvps) {
		return ErrNotFound
	}
	return s.save(filtered)
}
