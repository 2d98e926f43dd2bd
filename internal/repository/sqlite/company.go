package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/boards/pkg/models"
)

func (r *SQLiteRepo) CreateCompany(ctx context.Context, c *models.Company) (int64, error) {
	if c == nil {
		return 0, fmt.Errorf("company is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO companies (name, description, website, logo_url, owner_id, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Description, c.Website, c.LogoURL, c.OwnerID, ts, ts)
	if err != nil {
		return 0, mapErr(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	c.ID, c.Created, c.Updated = id, ts, ts

	return id, nil
}

func (r *SQLiteRepo) GetCompanyByOwner(ctx context.Context, ownerID int64) (*models.Company, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, description, website, logo_url, owner_id, created, updated FROM companies WHERE owner_id = ?`, ownerID)

	var c models.Company
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Website, &c.LogoURL, &c.OwnerID, &c.Created, &c.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &c, nil
}

// UpdateCompany rewrites the editable fields of the company owned by c.OwnerID.
func (r *SQLiteRepo) UpdateCompany(ctx context.Context, c *models.Company) error {
	if c == nil {
		return fmt.Errorf("company is nil")
	}

	c.Updated = now()
	_, err := r.conn.Exec(ctx, `UPDATE companies SET name = ?, description = ?, website = ?, logo_url = ?, updated = ? WHERE owner_id = ?`,
		c.Name, c.Description, c.Website, c.LogoURL, c.Updated, c.OwnerID)
	return mapErr(err)
}
