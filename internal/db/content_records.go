package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateContentRecord inserts a record of one produced piece of content.
func (db *DB) CreateContentRecord(ctx context.Context, input *ContentRecordInput) (*ContentRecord, error) {
	var tagsJSON []byte
	if len(input.Tags) > 0 {
		var err error
		tagsJSON, err = json.Marshal(input.Tags)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal tags: %w", err)
		}
	}

	var researchJSON []byte
	if input.ResearchContext != nil {
		var err error
		researchJSON, err = json.Marshal(input.ResearchContext)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal research context: %w", err)
		}
	}

	var completedAt *time.Time
	if input.Status == ContentStatusGenerated || input.Status == ContentStatusUploaded {
		now := time.Now().UTC()
		completedAt = &now
	}

	var record ContentRecord
	var tagsOut []byte
	err := db.pool.QueryRow(ctx,
		`INSERT INTO content_records
		   (talent_id, job_id, title, topic, content_type, status,
		    audio_path, video_path, youtube_url, tags, research_context, error_message, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, talent_id, job_id, title, topic, content_type, status,
		           audio_path, video_path, youtube_url, tags, research_context,
		           error_message, created_at, completed_at`,
		input.TalentID, nullIfEmpty(input.JobID), input.Title, input.Topic,
		input.ContentType, input.Status, nullIfEmpty(input.AudioPath),
		nullIfEmpty(input.VideoPath), nullIfEmpty(input.YouTubeURL),
		tagsJSON, researchJSON, nullIfEmpty(input.ErrorMessage), completedAt,
	).Scan(&record.ID, &record.TalentID, &record.JobID, &record.Title, &record.Topic,
		&record.ContentType, &record.Status, &record.AudioPath, &record.VideoPath,
		&record.YouTubeURL, &tagsOut, &record.ResearchContext,
		&record.ErrorMessage, &record.CreatedAt, &record.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create content record: %w", err)
	}

	if len(tagsOut) > 0 {
		if err := json.Unmarshal(tagsOut, &record.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
	}
	return &record, nil
}

// GetContentRecordByID retrieves a content record by ID, or nil if none exists.
func (db *DB) GetContentRecordByID(ctx context.Context, id uuid.UUID) (*ContentRecord, error) {
	var record ContentRecord
	var tagsOut []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, talent_id, job_id, title, topic, content_type, status,
		        audio_path, video_path, youtube_url, tags, research_context,
		        error_message, created_at, completed_at
		 FROM content_records WHERE id = $1`,
		id,
	).Scan(&record.ID, &record.TalentID, &record.JobID, &record.Title, &record.Topic,
		&record.ContentType, &record.Status, &record.AudioPath, &record.VideoPath,
		&record.YouTubeURL, &tagsOut, &record.ResearchContext,
		&record.ErrorMessage, &record.CreatedAt, &record.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get content record: %w", err)
	}

	if len(tagsOut) > 0 {
		if err := json.Unmarshal(tagsOut, &record.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
	}
	return &record, nil
}

// ListContentRecords retrieves content records with optional filters, newest
// first.
func (db *DB) ListContentRecords(ctx context.Context, filters ContentRecordFilters) ([]ContentRecord, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT id, talent_id, job_id, title, topic, content_type, status,
	                 audio_path, video_path, youtube_url, tags, research_context,
	                 error_message, created_at, completed_at
	          FROM content_records WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.TalentID != uuid.Nil {
		query += fmt.Sprintf(" AND talent_id = $%d", argNum)
		args = append(args, filters.TalentID)
		argNum++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, filters.Status)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list content records: %w", err)
	}
	defer rows.Close()

	var records []ContentRecord
	for rows.Next() {
		var record ContentRecord
		var tagsOut []byte
		if err := rows.Scan(&record.ID, &record.TalentID, &record.JobID, &record.Title,
			&record.Topic, &record.ContentType, &record.Status, &record.AudioPath,
			&record.VideoPath, &record.YouTubeURL, &tagsOut, &record.ResearchContext,
			&record.ErrorMessage, &record.CreatedAt, &record.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan content record: %w", err)
		}
		if len(tagsOut) > 0 {
			if err := json.Unmarshal(tagsOut, &record.Tags); err != nil {
				return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// ContentStats returns produced-content counts grouped by status.
func (db *DB) ContentStats(ctx context.Context) (map[string]int, error) {
	rows, err := db.pool.Query(ctx, `SELECT status, COUNT(*) FROM content_records GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to query content stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan content stats: %w", err)
		}
		stats[status] = count
	}
	return stats, nil
}
