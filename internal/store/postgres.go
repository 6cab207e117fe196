package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Rehan1234890/inventory/internal/domain"
)

type Store struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewStore(ctx context.Context, connString string, log *zap.Logger) (*Store, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return &Store{db: pool, log: log}, nil
}

func (s *Store) Close() {
	s.db.Close()
}

// --- users ---

func (s *Store) CreateUser(ctx context.Context, name, email, passwordHash string, role domain.Role) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		"INSERT INTO users (name, email, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING id",
		name, email, passwordHash, role,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := s.db.QueryRow(ctx,
		"SELECT id, name, email, password_hash, role, created_at FROM users WHERE email = $1",
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := s.db.QueryRow(ctx,
		"SELECT id, name, email, password_hash, role, created_at FROM users WHERE id = $1",
		id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := s.db.Query(ctx,
		"SELECT id, name, email, role, created_at FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) UpdateUserRole(ctx context.Context, id int64, role domain.Role) error {
	tag, err := s.db.Exec(ctx, "UPDATE users SET role = $1 WHERE id = $2", role, id)
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --- role permissions ---

// ListPermissions loads the full role-permission table. It backs the
// in-process table in the auth package.
func (s *Store) ListPermissions(ctx context.Context) (map[domain.Role]domain.PermissionSet, error) {
	rows, err := s.db.Query(ctx, `
		SELECT role, manage_users, manage_inventory, approve_requests, request_items, view_reports
		FROM permissions`)
	if err != nil {
		return nil, fmt.Errorf("query permissions: %w", err)
	}
	defer rows.Close()

	flags := make(map[domain.Role]domain.PermissionSet)
	for rows.Next() {
		var role domain.Role
		var p domain.PermissionSet
		if err := rows.Scan(&role, &p.ManageUsers, &p.ManageInventory,
			&p.ApproveRequests, &p.RequestItems, &p.ViewReports); err != nil {
			return nil, fmt.Errorf("scan permissions: %w", err)
		}
		flags[role] = p
	}
	return flags, rows.Err()
}

func (s *Store) UpdatePermissions(ctx context.Context, role domain.Role, p domain.PermissionSet) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE permissions
		SET manage_users = $1, manage_inventory = $2, approve_requests = $3,
		    request_items = $4, view_reports = $5
		WHERE role = $6`,
		p.ManageUsers, p.ManageInventory, p.ApproveRequests,
		p.RequestItems, p.ViewReports, role,
	)
	if err != nil {
		return fmt.Errorf("update permissions: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --- inventory items ---

func (s *Store) CreateItem(ctx context.Context, name string, quantity, price int64) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		"INSERT INTO items (name, quantity, price) VALUES ($1, $2, $3) RETURNING id",
		name, quantity, price,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}
	return id, nil
}

func (s *Store) GetItem(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	var it domain.InventoryItem
	err := s.db.QueryRow(ctx,
		"SELECT id, name, quantity, price, created_at, updated_at FROM items WHERE id = $1",
		id,
	).Scan(&it.ID, &it.Name, &it.Quantity, &it.Price, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return &it, nil
}

func (s *Store) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	rows, err := s.db.Query(ctx,
		"SELECT id, name, quantity, price, created_at, updated_at FROM items ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		var it domain.InventoryItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Quantity, &it.Price, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *Store) UpdateItem(ctx context.Context, id int64, name string, quantity, price int64) error {
	tag, err := s.db.Exec(ctx,
		"UPDATE items SET name = $1, quantity = $2, price = $3, updated_at = now() WHERE id = $4",
		name, quantity, price, id,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteItem(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
