package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/boards/pkg/models"
)

// UpsertOTP stores the code for an email, replacing any previous one.
func (r *SQLiteRepo) UpsertOTP(ctx context.Context, o *models.OTP) error {
	if o == nil {
		return fmt.Errorf("otp is nil")
	}

	_, err := r.conn.Exec(ctx, `INSERT INTO otp (email, code, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET code = excluded.code, expires_at = excluded.expires_at`, o.Email, o.Code, o.ExpiresAt)
	return err
}

func (r *SQLiteRepo) GetOTP(ctx context.Context, email string) (*models.OTP, error) {
	var o models.OTP
	row := r.conn.QueryRow(ctx, `SELECT email, code, expires_at FROM otp WHERE email = ?`, email)
	if err := row.Scan(&o.Email, &o.Code, &o.ExpiresAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &o, nil
}

func (r *SQLiteRepo) DeleteOTP(ctx context.Context, email string) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM otp WHERE email = ?`, email)
	return err
}
