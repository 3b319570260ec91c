package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"vsol_site/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type leadRow struct {
	ID          int64   `db:"id"`
	Name        string  `db:"name"`
	Email       string  `db:"email"`
	Company     *string `db:"company"`
	Description *string `db:"description"`
	FormType    string  `db:"form_type"`
	Status      string  `db:"status"`
	CreatedAt   int64   `db:"created_at"`
}

func (row *leadRow) toModel() *model.Lead {
	return &model.Lead{
		ID:          row.ID,
		Name:        row.Name,
		Email:       row.Email,
		Company:     row.Company,
		Description: row.Description,
		FormType:    row.FormType,
		Status:      row.Status,
		CreatedAt:   time.Unix(row.CreatedAt, 0).UTC(),
	}
}

func (r *Repository) CreateLead(ctx context.Context, lead *model.Lead) error {
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now().UTC()
	}
	if lead.Status == "" {
		lead.Status = model.LeadStatusNew
	}

	query, args, err := squirrel.
		Insert("leads").
		SetMap(map[string]interface{}{
			"name":        lead.Name,
			"email":       lead.Email,
			"company":     lead.Company,
			"description": lead.Description,
			"form_type":   lead.FormType,
			"status":      lead.Status,
			"created_at":  lead.CreatedAt.Unix(),
		}).
		PlaceholderFormat(squirrel.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build lead insert query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get lead id: %w", err)
	}
	lead.ID = id

	return nil
}

func (r *Repository) getLeadWithTx(ctx context.Context, tx *sqlx.Tx, id int64) (*leadRow, error) {
	query, args, err := squirrel.
		Select("*").
		From("leads").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Question).
		ToSql()
	if err != nil {
		return nil, err
	}

	var row leadRow
	err = tx.GetContext(ctx, &row, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &row, nil
}

// UpdateLeadStatus moves a lead through the follow-up lifecycle
// (new, contacted, converted).
func (r *Repository) UpdateLeadStatus(ctx context.Context, id int64, status string) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		_, err := r.getLeadWithTx(ctx, tx, id)
		if err != nil {
			return err
		}

		updateQuery, updateArgs, err := squirrel.
			Update("leads").
			Set("status", status).
			Where(squirrel.Eq{"id": id}).
			PlaceholderFormat(squirrel.Question).
			ToSql()
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, updateQuery, updateArgs...)
		if err != nil {
			return err
		}

		return nil
	})
}

func (r *Repository) GetLeads(ctx context.Context) ([]*model.Lead, error) {
	query, args, err := squirrel.
		Select("*").
		From("leads").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Question).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build leads select query: %w", err)
	}

	var rows []leadRow
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get leads: %w", err)
	}

	leads := make([]*model.Lead, len(rows))
	for i := range rows {
		leads[i] = rows[i].toModel()
	}

	return leads, nil
}
