package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mayaandrob/invite-api/internal/models"
)

// SQLiteStore is the local relational backend. Tests open it at :memory:
// to get a fresh, isolated collection per test.
type SQLiteStore struct {
	db *gorm.DB
}

// NewSQLiteStore opens (or creates) the database at path and migrates the
// rsvps table.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.AutoMigrate(&models.RSVP{}); err != nil {
		return nil, fmt.Errorf("failed to auto migrate: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) ListRSVPs(ctx context.Context) ([]models.RSVP, error) {
	rsvps := []models.RSVP{}
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&rsvps).Error; err != nil {
		return nil, fmt.Errorf("failed to list rsvps: %w", err)
	}
	return rsvps, nil
}

func (s *SQLiteStore) CreateRSVP(ctx context.Context, fields models.RSVPFields) (*models.RSVP, error) {
	fields.Normalize()

	rsvp := models.RSVP{
		ID:         uuid.NewString(),
		RSVPFields: fields,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&rsvp).Error; err != nil {
		return nil, fmt.Errorf("failed to create rsvp: %w", err)
	}
	return &rsvp, nil
}

func (s *SQLiteStore) UpdateRSVP(ctx context.Context, id string, fields models.RSVPFields) (*models.RSVP, error) {
	fields.Normalize()

	var rsvp models.RSVP
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rsvp, "id = ?", id).Error; err != nil {
			return err
		}
		rsvp.RSVPFields = fields
		return tx.Save(&rsvp).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update rsvp: %w", err)
	}
	return &rsvp, nil
}

func (s *SQLiteStore) DeleteRSVP(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.RSVP{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete rsvp: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
