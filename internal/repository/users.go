package repository

import (
	"context"
	"time"

	"github.com/deppfellow/portal-platform/internal/server"
	"github.com/deppfellow/portal-platform/internal/token"
)

// User is a portal account. Password holds the bcrypt hash and is never
// serialized.
type User struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Password  string     `json:"-"`
	Role      token.Role `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// UsersRepository persists portal accounts.
type UsersRepository struct {
	server *server.Server
}

// NewUsersRepository constructs a UsersRepository.
func NewUsersRepository(s *server.Server) *UsersRepository {
	return &UsersRepository{server: s}
}

// Create inserts a user and returns the stored row. passwordHash must
// already be hashed; this layer never sees plaintext credentials.
func (r *UsersRepository) Create(ctx context.Context, name, email, passwordHash string, role token.Role) (*User, error) {
	query := `
		INSERT INTO users (name, email, password, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, name, email, password, role, created_at, updated_at
	`

	user := &User{}
	err := r.server.DB.Pool.QueryRow(ctx, query, name, email, passwordHash, role).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.Role,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// FindByEmail returns the user with the given email, including the password
// hash for credential checks.
func (r *UsersRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, name, email, password, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	user := &User{}
	err := r.server.DB.Pool.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.Role,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// FindByID returns the user with the given id.
func (r *UsersRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	query := `
		SELECT id, name, email, password, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	user := &User{}
	err := r.server.DB.Pool.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.Role,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return user, nil
}
