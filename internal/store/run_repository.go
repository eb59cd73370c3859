package store

import (
	"database/sql"
	"fmt"

	"github.com/spincat/pixelpet/internal/factory"
)

// RunNotFoundError indicates a lookup matched no run.
type RunNotFoundError struct {
	BatchID string
}

func (e *RunNotFoundError) Error() string {
	return fmt.Sprintf("run not found: batch %s", e.BatchID)
}

// RunRepository persists completed production runs.
type RunRepository struct {
	db *sql.DB
}

func newRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Save inserts a completed run and returns its database ID.
func (r *RunRepository) Save(card factory.ProductCard) (int64, error) {
	model := toRunModel(card)

	result, err := r.db.Exec(
		`INSERT INTO runs (batch_guid, tracking_number, recipe, production, quality, packaging, logistics, overall, rating, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		model.BatchGUID, model.TrackingNumber, model.Recipe, model.Production, model.Quality,
		model.Packaging, model.Logistics, model.Overall, model.Rating, model.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}
	return id, nil
}

// FindByBatch retrieves a run by its batch GUID.
// Returns RunNotFoundError if no matching run exists.
func (r *RunRepository) FindByBatch(batchID string) (Run, error) {
	var model runModel
	err := r.db.QueryRow(
		`SELECT id, batch_guid, tracking_number, recipe, production, quality, packaging, logistics, overall, rating, created_at
		 FROM runs WHERE batch_guid = ?`,
		batchID,
	).Scan(&model.ID, &model.BatchGUID, &model.TrackingNumber, &model.Recipe, &model.Production,
		&model.Quality, &model.Packaging, &model.Logistics, &model.Overall, &model.Rating, &model.CreatedAt)

	if err == sql.ErrNoRows {
		return Run{}, &RunNotFoundError{BatchID: batchID}
	}
	if err != nil {
		return Run{}, fmt.Errorf("finding run by batch: %w", err)
	}
	return model.toDomain(), nil
}

// List retrieves runs ordered by created_at descending (newest first).
// A limit of 0 means no limit.
func (r *RunRepository) List(limit int) ([]Run, error) {
	query := `SELECT id, batch_guid, tracking_number, recipe, production, quality, packaging, logistics, overall, rating, created_at
			  FROM runs ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var model runModel
		err := rows.Scan(&model.ID, &model.BatchGUID, &model.TrackingNumber, &model.Recipe, &model.Production,
			&model.Quality, &model.Packaging, &model.Logistics, &model.Overall, &model.Rating, &model.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		runs = append(runs, model.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run rows: %w", err)
	}

	return runs, nil
}

// Prune deletes all but the newest keep runs. Returns how many were removed.
func (r *RunRepository) Prune(keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	result, err := r.db.Exec(
		`DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY created_at DESC, id DESC LIMIT ?
		)`,
		keep,
	)
	if err != nil {
		return 0, fmt.Errorf("pruning runs: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}
	return removed, nil
}
