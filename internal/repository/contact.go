package repository

import (
	"context"
	"fmt"
	"time"

	"vsol_site/internal/model"

	"github.com/Masterminds/squirrel"
)

type contactRow struct {
	ID        int64   `db:"id"`
	Name      string  `db:"name"`
	Email     string  `db:"email"`
	Subject   *string `db:"subject"`
	Message   string  `db:"message"`
	Status    string  `db:"status"`
	CreatedAt int64   `db:"created_at"`
}

func (row *contactRow) toModel() *model.ContactSubmission {
	return &model.ContactSubmission{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Subject:   row.Subject,
		Message:   row.Message,
		Status:    row.Status,
		CreatedAt: time.Unix(row.CreatedAt, 0).UTC(),
	}
}

func (r *Repository) CreateContactSubmission(ctx context.Context, submission *model.ContactSubmission) error {
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = time.Now().UTC()
	}
	if submission.Status == "" {
		submission.Status = "new"
	}

	query, args, err := squirrel.
		Insert("contact_submissions").
		SetMap(map[string]interface{}{
			"name":       submission.Name,
			"email":      submission.Email,
			"subject":    submission.Subject,
			"message":    submission.Message,
			"status":     submission.Status,
			"created_at": submission.CreatedAt.Unix(),
		}).
		PlaceholderFormat(squirrel.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build contact insert query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert contact submission: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get contact submission id: %w", err)
	}
	submission.ID = id

	return nil
}

func (r *Repository) GetContactSubmissions(ctx context.Context) ([]*model.ContactSubmission, error) {
	query, args, err := squirrel.
		Select("*").
		From("contact_submissions").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Question).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build contact select query: %w", err)
	}

	var rows []contactRow
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get contact submissions: %w", err)
	}

	submissions := make([]*model.ContactSubmission, len(rows))
	for i := range rows {
		submissions[i] = rows[i].toModel()
	}

	return submissions, nil
}
