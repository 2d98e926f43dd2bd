// Package otp issues and checks the one-time codes that confirm an email address
// before a job board account is created.
package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/garnizeh/boards/internal/apperr"
	"github.com/garnizeh/boards/internal/auth"
	"github.com/garnizeh/boards/internal/mailer"
	"github.com/garnizeh/boards/pkg/models"
	"github.com/garnizeh/boards/pkg/repository"
)

var (
	ErrEmailExists = apperr.Conflict("Email already exists")
	ErrNotFound    = apperr.Validation("OTP not found")
	ErrExpired     = apperr.Validation("OTP expired")
	ErrMismatch    = apperr.Validation("Invalid OTP")
)

const (
	codeMin = 100000
	codeMax = 999999
)

type Service struct {
	codes  repository.OTPRepo
	users  repository.UserRepo
	mail   mailer.Sender
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

func NewService(codes repository.OTPRepo, users repository.UserRepo, mail mailer.Sender, ttl time.Duration, logger *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{codes: codes, users: users, mail: mail, ttl: ttl, now: time.Now, logger: logger}
}

// WithClock replaces the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Issue stores a fresh code for email, replacing any previous one, and mails it.
func (s *Service) Issue(ctx context.Context, email string) error {
	email = auth.NormalizeEmail(email)
	if email == "" {
		return apperr.Validation("email is required")
	}

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return apperr.Internal("lookup user", err)
	}
	if existing != nil {
		return ErrEmailExists
	}

	code, err := generateCode()
	if err != nil {
		return apperr.Internal("generate otp", err)
	}

	rec := &models.OTP{Email: email, Code: code, ExpiresAt: s.now().Add(s.ttl).UnixMilli()}
	if err := s.codes.UpsertOTP(ctx, rec); err != nil {
		return apperr.Internal("store otp", err)
	}

	msg, err := mailer.OTPEmail(email, code, s.ttl)
	if err != nil {
		return apperr.Internal("render otp email", err)
	}
	if err := s.mail.Send(ctx, msg); err != nil {
		return apperr.Internal("send otp email", err)
	}

	s.logger.Info("otp issued", slog.String("email", email))

	return nil
}

// Verify checks code against the stored one and consumes it on success.
func (s *Service) Verify(ctx context.Context, email, code string) error {
	email = auth.NormalizeEmail(email)
	if email == "" || code == "" {
		return apperr.Validation("email and otp are required")
	}

	rec, err := s.codes.GetOTP(ctx, email)
	if err != nil {
		return apperr.Internal("load otp", err)
	}
	if rec == nil {
		return ErrNotFound
	}
	if s.now().UnixMilli() > rec.ExpiresAt {
		return ErrExpired
	}
	if subtle.ConstantTimeCompare([]byte(rec.Code), []byte(code)) != 1 {
		return ErrMismatch
	}

	if err := s.codes.DeleteOTP(ctx, email); err != nil {
		return apperr.Internal("delete otp", err)
	}

	return nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}
