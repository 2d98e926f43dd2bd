package otp_test

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/garnizeh/boards/internal/apperr"
	"github.com/garnizeh/boards/internal/mailer"
	"github.com/garnizeh/boards/internal/otp"
	"github.com/garnizeh/boards/pkg/models"
	"github.com/garnizeh/boards/pkg/repository/mock"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var sixDigits = regexp.MustCompile(`^[1-9][0-9]{5}$`)

type fixture struct {
	mocks *mock.Mocks
	mail  *mailer.Recorder
	svc   *otp.Service
	now   time.Time
}

func newFixture() *fixture {
	f := &fixture{mocks: mock.NewMocks(), mail: &mailer.Recorder{}, now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	f.svc = otp.NewService(f.mocks.OTPRepo, f.mocks.UserRepo, f.mail, 5*time.Minute, nil).
		WithClock(func() time.Time { return f.now })
	return f
}

func TestIssue(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if err := f.svc.Issue(ctx, " New@Example.com "); err != nil {
		t.Fatalf("Issue: %v", err)
	}

	rec, ok := f.mocks.OTPRepo.Stored["new@example.com"]
	if !ok {
		t.Fatalf("expected otp stored under normalized email")
	}
	if !sixDigits.MatchString(rec.Code) {
		t.Fatalf("expected 6-digit code, got %q", rec.Code)
	}
	n, _ := strconv.Atoi(rec.Code)
	if n < 100000 || n > 999999 {
		t.Fatalf("code out of range: %d", n)
	}
	if want := f.now.Add(5 * time.Minute).UnixMilli(); rec.ExpiresAt != want {
		t.Fatalf("expected expiry %d got %d", want, rec.ExpiresAt)
	}

	last, ok := f.mail.Last()
	if !ok || last.To != "new@example.com" {
		t.Fatalf("expected otp email, got %#v", last)
	}

	// a second request replaces the first code
	first := rec.Code
	for i := 0; i < 5; i++ {
		if err := f.svc.Issue(ctx, "new@example.com"); err != nil {
			t.Fatalf("Issue again: %v", err)
		}
		if f.mocks.OTPRepo.Stored["new@example.com"].Code != first {
			break
		}
	}
	if len(f.mocks.OTPRepo.Stored) != 1 {
		t.Fatalf("expected one live code per email, got %d", len(f.mocks.OTPRepo.Stored))
	}
}

func TestIssue_Errors(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		prepare  func(f *fixture)
		wantKind apperr.Kind
		wantErr  error
	}{
		{
			name:     "Blank",
			email:    "  ",
			wantKind: apperr.KindValidation,
		},
		{
			name:  "Registered",
			email: "taken@example.com",
			prepare: func(f *fixture) {
				f.mocks.UserRepo.Stored = []models.User{{ID: 1, Email: "taken@example.com"}}
			},
			wantKind: apperr.KindConflict,
			wantErr:  otp.ErrEmailExists,
		},
		{
			name:     "StoreFailure",
			email:    "x@example.com",
			prepare:  func(f *fixture) { f.mocks.OTPRepo.Err = errors.New("locked") },
			wantKind: apperr.KindInternal,
		},
		{
			name:     "MailFailure",
			email:    "x@example.com",
			prepare:  func(f *fixture) { f.mail.Err = errors.New("smtp down") },
			wantKind: apperr.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.prepare != nil {
				tt.prepare(f)
			}

			err := f.svc.Issue(context.Background(), tt.email)
			if err == nil {
				t.Fatalf("expected error")
			}
			if apperr.KindOf(err) != tt.wantKind {
				t.Fatalf("want kind %v got %v (%v)", tt.wantKind, apperr.KindOf(err), err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v got %v", tt.wantErr, err)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		advance time.Duration
		skip    bool
		wantErr error
	}{
		{name: "Success", code: ""},
		{name: "NotFound", skip: true, code: "123456", wantErr: otp.ErrNotFound},
		{name: "Expired", code: "", advance: 5*time.Minute + time.Second, wantErr: otp.ErrExpired},
		{name: "AtExpiry", code: "", advance: 5 * time.Minute},
		{name: "Mismatch", code: "000000", wantErr: otp.ErrMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			ctx := context.Background()
			email := "v@example.com"

			if !tt.skip {
				if err := f.svc.Issue(ctx, email); err != nil {
					t.Fatalf("Issue: %v", err)
				}
			}
			code := tt.code
			if code == "" {
				code = f.mocks.OTPRepo.Stored[email].Code
			}
			f.now = f.now.Add(tt.advance)

			err := f.svc.Verify(ctx, email, code)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v got %v", tt.wantErr, err)
				}
				if apperr.KindOf(err) != apperr.KindValidation {
					t.Fatalf("expected validation kind, got %v", apperr.KindOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, ok := f.mocks.OTPRepo.Stored[email]; ok {
				t.Fatalf("expected otp to be consumed")
			}
			if err := f.svc.Verify(ctx, email, code); !errors.Is(err, otp.ErrNotFound) {
				t.Fatalf("expected reuse to fail with not found, got %v", err)
			}
		})
	}
}

func TestVerify_DistinctMessages(t *testing.T) {
	msgs := map[string]bool{}
	for _, err := range []error{otp.ErrNotFound, otp.ErrExpired, otp.ErrMismatch} {
		msgs[apperr.Message(err)] = true
	}
	if len(msgs) != 3 {
		t.Fatalf("expected three distinct reasons, got %v", msgs)
	}
}
