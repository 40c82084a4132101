package pgx

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/knowtasks/knowtasks/core"
)

func (a *Adapter) Create(ctx context.Context, p *core.Principal) error {
	query := `INSERT INTO principals (id, email, password_hash, name, role, status)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING created_at`

	err := a.pool.QueryRow(ctx, query,
		p.ID, p.Email, p.PasswordHash, p.Name, p.Role, p.Status,
	).Scan(&p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (a *Adapter) FindByID(ctx context.Context, id string) (*core.Principal, error) {
	q := `SELECT id, email, password_hash, name, role, status, created_at, last_login_at
	      FROM principals WHERE id = $1`
	return a.scanPrincipal(a.pool.QueryRow(ctx, q, id))
}

func (a *Adapter) FindByEmail(ctx context.Context, email string) (*core.Principal, error) {
	q := `SELECT id, email, password_hash, name, role, status, created_at, last_login_at
	      FROM principals WHERE email = $1`
	return a.scanPrincipal(a.pool.QueryRow(ctx, q, email))
}

func (a *Adapter) scanPrincipal(row pgx.Row) (*core.Principal, error) {
	p := &core.Principal{}
	var lastLogin *time.Time
	err := row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.Name, &p.Role, &p.Status, &p.CreatedAt, &lastLogin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrPrincipalNotFound
		}
		return nil, err
	}
	p.LastLoginAt = lastLogin
	return p, nil
}

func (a *Adapter) UpdateStatus(ctx context.Context, id string, status core.Status) error {
	tag, err := a.pool.Exec(ctx, `UPDATE principals SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrPrincipalNotFound
	}
	return nil
}

func (a *Adapter) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	tag, err := a.pool.Exec(ctx, `UPDATE principals SET password_hash = $1 WHERE id = $2`, hash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrPrincipalNotFound
	}
	return nil
}

func (a *Adapter) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := a.pool.Exec(ctx, `UPDATE principals SET last_login_at = $1 WHERE id = $2`, at, id)
	return err
}

// Delete removes a principal. Owned content rows go with it via the
// foreign key cascade.
func (a *Adapter) Delete(ctx context.Context, id string) error {
	tag, err := a.pool.Exec(ctx, `DELETE FROM principals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrPrincipalNotFound
	}
	return nil
}
