package pgx

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/knowtasks/knowtasks/core"
)

func (a *Adapter) CreateItem(ctx context.Context, item *core.ContentItem) error {
	query := `INSERT INTO content_items (id, owner_id, kind, title, subject, category, file_key, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := a.pool.Exec(ctx, query,
		item.ID, item.OwnerID, item.Kind, item.Title, item.Subject, item.Category, item.FileKey, item.CreatedAt, item.UpdatedAt,
	)
	return err
}

func (a *Adapter) GetItem(ctx context.Context, id string) (*core.ContentItem, error) {
	q := `SELECT id, owner_id, kind, title, subject, category, file_key, created_at, updated_at
	      FROM content_items WHERE id = $1`

	item := &core.ContentItem{}
	err := a.pool.QueryRow(ctx, q, id).Scan(
		&item.ID, &item.OwnerID, &item.Kind, &item.Title, &item.Subject, &item.Category, &item.FileKey, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrContentNotFound
		}
		return nil, err
	}
	return item, nil
}

func (a *Adapter) ListItems(ctx context.Context, filter core.ContentFilter) ([]*core.ContentItem, error) {
	q := `SELECT id, owner_id, kind, title, subject, category, file_key, created_at, updated_at
	      FROM content_items WHERE 1=1`

	args := []any{}
	if filter.OwnerID != "" {
		args = append(args, filter.OwnerID)
		q += fmt.Sprintf(" AND owner_id = $%d", len(args))
	}
	if filter.Kind != "" {
		args = append(args, filter.Kind)
		q += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	if filter.Subject != "" {
		args = append(args, filter.Subject)
		q += fmt.Sprintf(" AND subject = $%d", len(args))
	}
	q += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := a.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*core.ContentItem
	for rows.Next() {
		item := &core.ContentItem{}
		err := rows.Scan(
			&item.ID, &item.OwnerID, &item.Kind, &item.Title, &item.Subject, &item.Category, &item.FileKey, &item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (a *Adapter) UpdateItem(ctx context.Context, item *core.ContentItem) error {
	query := `UPDATE content_items
	          SET kind = $1, title = $2, subject = $3, category = $4, updated_at = $5
	          WHERE id = $6`

	tag, err := a.pool.Exec(ctx, query,
		item.Kind, item.Title, item.Subject, item.Category, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrContentNotFound
	}
	return nil
}

func (a *Adapter) DeleteItem(ctx context.Context, id string) error {
	tag, err := a.pool.Exec(ctx, `DELETE FROM content_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrContentNotFound
	}
	return nil
}
