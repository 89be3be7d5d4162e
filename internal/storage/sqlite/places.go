package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/locbot/internal/core"
	"github.com/sandevgo/locbot/pkg/log"
)

type PlacesRepo struct {
	db *sql.DB
}

func NewPlacesRepo(db *sql.DB) *PlacesRepo {
	return &PlacesRepo{db: db}
}

func (r *PlacesRepo) SavePlace(ctx context.Context, place core.Place) (int64, error) {
	query := `INSERT INTO places (session_id, address) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, query, place.SessionID, place.Address)
	if err != nil {
		return 0, fmt.Errorf("failed to insert place: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted place id: %w", err)
	}

	log.FromCtx(ctx).Debug().Int64("id", id).Str("session", place.SessionID).Msg("saved place")
	return id, nil
}

func (r *PlacesRepo) ListPlaces(ctx context.Context, sessionID string, limit int) ([]core.Place, error) {
	query := `SELECT id, session_id, address, created_at FROM places WHERE session_id = ? ORDER BY id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query places: %w", err)
	}
	defer rows.Close()

	var places []core.Place
	for rows.Next() {
		var p core.Place
		if err := rows.Scan(&p.ID, &p.SessionID, &p.Address, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		places = append(places, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return places, nil
}
