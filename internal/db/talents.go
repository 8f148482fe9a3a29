package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UpsertTalent creates a talent or updates its specialization and voice if
// a talent with the same name already exists.
func (db *DB) UpsertTalent(ctx context.Context, name, specialization, voiceID string) (*Talent, error) {
	var talent Talent
	err := db.pool.QueryRow(ctx,
		`INSERT INTO talents (name, specialization, voice_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (name) DO UPDATE SET specialization = $2, voice_id = $3, updated_at = NOW()
		 RETURNING id, name, specialization, voice_id, created_at, updated_at`,
		name, specialization, nullIfEmpty(voiceID),
	).Scan(&talent.ID, &talent.Name, &talent.Specialization, &talent.VoiceID,
		&talent.CreatedAt, &talent.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert talent %s: %w", name, err)
	}
	return &talent, nil
}

// GetTalentByName retrieves a talent by name, or nil if none exists.
func (db *DB) GetTalentByName(ctx context.Context, name string) (*Talent, error) {
	var talent Talent
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, specialization, voice_id, created_at, updated_at
		 FROM talents WHERE name = $1`,
		name,
	).Scan(&talent.ID, &talent.Name, &talent.Specialization, &talent.VoiceID,
		&talent.CreatedAt, &talent.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get talent %s: %w", name, err)
	}
	return &talent, nil
}

// ListTalents retrieves all talents ordered by name.
func (db *DB) ListTalents(ctx context.Context) ([]Talent, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, specialization, voice_id, created_at, updated_at
		 FROM talents ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list talents: %w", err)
	}
	defer rows.Close()

	var talents []Talent
	for rows.Next() {
		var talent Talent
		if err := rows.Scan(&talent.ID, &talent.Name, &talent.Specialization, &talent.VoiceID,
			&talent.CreatedAt, &talent.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan talent: %w", err)
		}
		talents = append(talents, talent)
	}
	return talents, nil
}

// DeleteTalent deletes a talent and its content records (via cascade).
func (db *DB) DeleteTalent(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM talents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete talent: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("talent not found: %s", id)
	}
	return nil
}
