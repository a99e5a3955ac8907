package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mayaandrob/invite-api/internal/models"
)

// PostgresStore keeps each RSVP as one row of the rsvps table in a hosted
// Postgres database. Column names use snake_case; the row mapping functions
// translate between row and record shape on every read and write.
type PostgresStore struct {
	pool *pgxpool.Pool
}

const createTableSQL = `
	CREATE TABLE IF NOT EXISTS rsvps (
		id                   text PRIMARY KEY,
		guest_name           text NOT NULL,
		attending            text NOT NULL,
		number_of_guests     integer NOT NULL DEFAULT 0,
		additional_guests    text NOT NULL DEFAULT '',
		dietary_restrictions text NOT NULL DEFAULT '',
		created_at           timestamptz NOT NULL
	)`

// NewPostgresStore connects to the hosted database at url, authenticating
// with serviceKey, and bootstraps the rsvps table.
func NewPostgresStore(ctx context.Context, url, serviceKey string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	cfg.ConnConfig.Password = serviceKey

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create rsvps table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// rsvpRow is the table shape of a record. Optional text columns scan through
// NullString so legacy NULLs read back as empty strings.
type rsvpRow struct {
	ID                  string
	GuestName           string
	Attending           string
	NumberOfGuests      int
	AdditionalGuests    sql.NullString
	DietaryRestrictions sql.NullString
	CreatedAt           time.Time
}

func rowFromRSVP(r models.RSVP) rsvpRow {
	return rsvpRow{
		ID:                  r.ID,
		GuestName:           r.GuestName,
		Attending:           string(r.Attending),
		NumberOfGuests:      r.NumberOfGuests,
		AdditionalGuests:    sql.NullString{String: r.AdditionalGuests, Valid: true},
		DietaryRestrictions: sql.NullString{String: r.DietaryRestrictions, Valid: true},
		CreatedAt:           r.CreatedAt,
	}
}

func rsvpFromRow(row rsvpRow) models.RSVP {
	return models.RSVP{
		ID: row.ID,
		RSVPFields: models.RSVPFields{
			GuestName:           row.GuestName,
			Attending:           models.Attendance(row.Attending),
			NumberOfGuests:      row.NumberOfGuests,
			AdditionalGuests:    row.AdditionalGuests.String,
			DietaryRestrictions: row.DietaryRestrictions.String,
		},
		CreatedAt: row.CreatedAt,
	}
}

func (s *PostgresStore) ListRSVPs(ctx context.Context) ([]models.RSVP, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, guest_name, attending, number_of_guests,
		       additional_guests, dietary_restrictions, created_at
		FROM rsvps
		ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rsvps: %w", err)
	}
	defer rows.Close()

	result := []models.RSVP{}
	for rows.Next() {
		var row rsvpRow
		if err := rows.Scan(
			&row.ID, &row.GuestName, &row.Attending, &row.NumberOfGuests,
			&row.AdditionalGuests, &row.DietaryRestrictions, &row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rsvp row: %w", err)
		}
		result = append(result, rsvpFromRow(row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rsvp rows: %w", err)
	}
	return result, nil
}

func (s *PostgresStore) CreateRSVP(ctx context.Context, fields models.RSVPFields) (*models.RSVP, error) {
	fields.Normalize()

	rsvp := models.RSVP{
		ID:         uuid.NewString(),
		RSVPFields: fields,
		CreatedAt:  time.Now().UTC(),
	}
	row := rowFromRSVP(rsvp)
	_, err := s.pool.Exec(ctx, `
		INSERT INTO rsvps (id, guest_name, attending, number_of_guests,
		                   additional_guests, dietary_restrictions, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		row.ID, row.GuestName, row.Attending, row.NumberOfGuests,
		row.AdditionalGuests, row.DietaryRestrictions, row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert rsvp: %w", err)
	}
	return &rsvp, nil
}

func (s *PostgresStore) UpdateRSVP(ctx context.Context, id string, fields models.RSVPFields) (*models.RSVP, error) {
	fields.Normalize()

	var createdAt time.Time
	err := s.pool.QueryRow(ctx, `
		UPDATE rsvps
		SET guest_name = $2, attending = $3, number_of_guests = $4,
		    additional_guests = $5, dietary_restrictions = $6
		WHERE id = $1
		RETURNING created_at`,
		id, fields.GuestName, string(fields.Attending), fields.NumberOfGuests,
		fields.AdditionalGuests, fields.DietaryRestrictions).Scan(&createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update rsvp: %w", err)
	}
	return &models.RSVP{ID: id, RSVPFields: fields, CreatedAt: createdAt}, nil
}

func (s *PostgresStore) DeleteRSVP(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM rsvps WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete rsvp: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
