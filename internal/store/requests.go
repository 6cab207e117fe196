package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Rehan1234890/inventory/internal/domain"
)

func (s *Store) CreateRequest(ctx context.Context, userID, itemID, quantity int64) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		"INSERT INTO requests (user_id, item_id, quantity, status) VALUES ($1, $2, $3, $4) RETURNING id",
		userID, itemID, quantity, domain.StatusPending,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert request: %w", err)
	}
	return id, nil
}

func (s *Store) GetRequest(ctx context.Context, id int64) (*domain.Request, error) {
	var r domain.Request
	err := s.db.QueryRow(ctx,
		"SELECT id, user_id, item_id, quantity, status, created_at, updated_at FROM requests WHERE id = $1",
		id,
	).Scan(&r.ID, &r.UserID, &r.ItemID, &r.Quantity, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query request: %w", err)
	}
	return &r, nil
}

// UpdateRequestStatus is the conditional status write: it only succeeds if
// the stored status still equals the status the caller observed. Zero rows
// means a concurrent transition won the race.
func (s *Store) UpdateRequestStatus(ctx context.Context, id int64, observed, next domain.Status) error {
	tag, err := s.db.Exec(ctx,
		"UPDATE requests SET status = $1, updated_at = now() WHERE id = $2 AND status = $3",
		next, id, observed,
	)
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// ListAllRequests is the privileged listing: every request joined with the
// requester's name and the item name.
func (s *Store) ListAllRequests(ctx context.Context) ([]domain.RequestListing, error) {
	rows, err := s.db.Query(ctx, `
		SELECT r.id, u.name, i.name, r.quantity, r.status
		FROM requests r
		JOIN users u ON r.user_id = u.id
		JOIN items i ON r.item_id = i.id
		ORDER BY r.id`)
	if err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}
	defer rows.Close()

	var out []domain.RequestListing
	for rows.Next() {
		var l domain.RequestListing
		if err := rows.Scan(&l.ID, &l.Requester, &l.ItemName, &l.Quantity, &l.Status); err != nil {
			return nil, fmt.Errorf("scan request listing: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ListRequestsByUser is the unprivileged listing: only the caller's own rows.
func (s *Store) ListRequestsByUser(ctx context.Context, userID int64) ([]domain.RequestListing, error) {
	rows, err := s.db.Query(ctx, `
		SELECT r.id, i.name, r.quantity, r.status
		FROM requests r
		JOIN items i ON r.item_id = i.id
		WHERE r.user_id = $1
		ORDER BY r.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}
	defer rows.Close()

	var out []domain.RequestListing
	for rows.Next() {
		var l domain.RequestListing
		if err := rows.Scan(&l.ID, &l.ItemName, &l.Quantity, &l.Status); err != nil {
			return nil, fmt.Errorf("scan request listing: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
