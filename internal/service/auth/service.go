package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/cytrico/frontdesk/internal/domain/models"
)

// ErrInvalidCredentials is returned for unknown emails and wrong passwords
// alike; callers must not be able to tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInactiveAccount is returned when the account exists but is disabled.
var ErrInactiveAccount = errors.New("account is inactive")

// ErrInvalidInput marks malformed account payloads.
var ErrInvalidInput = errors.New("invalid user input")

// UserStore is the persistence surface the auth service depends on.
type UserStore interface {
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user models.User) (string, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UsersByRole(ctx context.Context, role models.Role) ([]models.User, error)
	UpdateUser(ctx context.Context, user models.User) error
	DeleteUser(ctx context.Context, id string) error
}

// Service authenticates staff and manages provisioned accounts.
type Service struct {
	store  UserStore
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new auth service instance.
func NewService(store UserStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// Login verifies an email/password pair and returns the account together
// with the permission set its role grants.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, []models.Permission, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		s.logger.Debug("login lookup failed", zap.String("email", email), zap.Error(err))
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.Active {
		return nil, nil, ErrInactiveAccount
	}

	s.logger.Info("user logged in", zap.String("email", email), zap.String("role", string(user.Role)))
	return user, models.RolePermissions(user.Role), nil
}

// UserInput is the payload for creating or updating a staff account.
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
	Active   bool   `json:"active"`
}

func (in UserInput) role() (models.Role, error) {
	role := models.Role(in.Role)
	if !role.Valid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, in.Role)
	}
	return role, nil
}

// CreateUser provisions a staff account with a bcrypt-hashed password.
func (s *Service) CreateUser(ctx context.Context, in UserInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email, and password are required", ErrInvalidInput)
	}
	role, err := in.role()
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Phone:        strings.TrimSpace(in.Phone),
		Active:       in.Active,
		CreatedAt:    s.now().UTC(),
	}

	id, err := s.store.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	user.ID = id

	s.logger.Info("user created", zap.String("email", email), zap.String("role", string(role)))
	return &user, nil
}

// UpdateUser replaces the mutable fields of an account. An empty password
// keeps the stored hash.
func (s *Service) UpdateUser(ctx context.Context, id string, in UserInput) (*models.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}

	var current *models.User
	for i := range users {
		if users[i].ID == id {
			current = &users[i]
			break
		}
	}
	if current == nil {
		return nil, fmt.Errorf("%w: user %s not found", ErrInvalidInput, id)
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		current.Name = name
	}
	if email := strings.ToLower(strings.TrimSpace(in.Email)); email != "" {
		current.Email = email
	}
	if in.Role != "" {
		role, err := in.role()
		if err != nil {
			return nil, err
		}
		current.Role = role
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		current.PasswordHash = string(hash)
	}
	current.Phone = strings.TrimSpace(in.Phone)
	current.Active = in.Active

	if err := s.store.UpdateUser(ctx, *current); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return current, nil
}

// ListUsers returns accounts, optionally filtered by role.
func (s *Service) ListUsers(ctx context.Context, role string) ([]models.User, error) {
	if role != "" {
		parsed := models.Role(role)
		if !parsed.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
		}
		return s.store.UsersByRole(ctx, parsed)
	}
	return s.store.ListUsers(ctx)
}

// DeleteUser removes an account.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	s.logger.Info("user deleted", zap.String("id", id))
	return nil
}
