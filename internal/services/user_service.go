package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/isdelr/taskdesk-be/internal/auth"
	"github.com/isdelr/taskdesk-be/internal/database"
	"github.com/isdelr/taskdesk-be/internal/models"
)

var (
	// ErrUserNotFound is returned when no account matches the lookup key.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	CreateUser(ctx context.Context, username, email, password string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	AuthenticateUser(ctx context.Context, email, password string) (models.User, error)
}

// UserService provides business logic for user management.
type UserService struct {
	db *database.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *database.DB) *UserService {
	return &UserService{db: db}
}

// CreateUser creates a new user, hashing their password.
func (s *UserService) CreateUser(ctx context.Context, username, email, password string) (models.User, error) {
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	const query = "INSERT INTO users (username, password_hash, email) VALUES ($1, $2, $3)"
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(query), user.Username, user.PasswordHash, user.Email); err != nil {
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	// Return user without password hash
	user.PasswordHash = ""
	return user, nil
}

// GetUserByEmail retrieves a single user by their email, including the password hash.
// Email is not unique in the schema; the earliest registration wins.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	const query = "SELECT id, username, password_hash, email FROM users WHERE email = $1 ORDER BY id LIMIT 1"

	var user models.User
	var username, passwordHash, storedEmail sql.NullString
	err := s.db.QueryRowContext(ctx, s.db.Rebind(query), email).Scan(&user.ID, &username, &passwordHash, &storedEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("failed to find user: %w", err)
	}

	user.Username = username.String
	user.PasswordHash = passwordHash.String
	user.Email = storedEmail.String
	return user, nil
}

// AuthenticateUser verifies a user's credentials. Unknown accounts and wrong
// passwords both yield ErrInvalidCredentials; any other error is a store failure.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (models.User, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return models.User{}, fmt.Errorf("%w: user not found", ErrInvalidCredentials)
		}
		return models.User{}, err
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return models.User{}, fmt.Errorf("%w: password mismatch", ErrInvalidCredentials)
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}
