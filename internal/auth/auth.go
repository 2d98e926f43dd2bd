// Package auth registers and authenticates users and issues the bearer tokens that
// identify them on later requests.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/garnizeh/boards/internal/apperr"
	"github.com/garnizeh/boards/pkg/models"
	"github.com/garnizeh/boards/pkg/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = apperr.Conflict("User already exists")
	ErrUserNotFound       = apperr.Credentials("User not found")
	ErrInvalidCredentials = apperr.Credentials("Invalid credentials")
	ErrNotLoggedIn        = apperr.Unauthenticated("Not logged in")
	ErrInvalidToken       = apperr.Forbidden("Invalid or expired token")
)

type Service struct {
	users  repository.UserRepo
	tokens *TokenIssuer
	cost   int
	logger *slog.Logger
}

func NewService(users repository.UserRepo, tokens *TokenIssuer, cost int, logger *slog.Logger) *Service {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{users: users, tokens: tokens, cost: cost, logger: logger}
}

type RegisterParams struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Register(ctx context.Context, p RegisterParams) (*models.User, error) {
	email := NormalizeEmail(p.Email)
	name := strings.TrimSpace(p.Name)
	if email == "" || p.Password == "" || name == "" {
		return nil, apperr.Validation("email, password and name are required")
	}
	role := p.Role
	if role == "" {
		role = models.RoleUser
	}

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal("lookup user", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), s.cost)
	if err != nil {
		return nil, apperr.Internal("hash password", err)
	}

	u := &models.User{Email: email, Name: name, Role: role, PasswordHash: string(hash)}
	if _, err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, apperr.Internal("create user", err)
	}

	s.logger.Info("user registered", slog.Int64("user_id", u.ID), slog.String("role", u.Role))

	return u, nil
}

// Login checks the password of the user with email and returns a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, apperr.Validation("email and password are required")
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, apperr.Internal("lookup user", err)
	}
	if u == nil {
		return "", nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return "", nil, apperr.Internal("sign token", err)
	}

	return token, u, nil
}

// Authenticate verifies a raw Authorization header value of the form "Bearer <token>".
func (s *Service) Authenticate(header string) (*Claims, error) {
	token, ok := BearerToken(header)
	if !ok {
		return nil, ErrNotLoggedIn
	}

	return s.tokens.Verify(token)
}

// BearerToken extracts the token from an Authorization header.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)

	return token, token != ""
}
