package repository

import (
	"context"
	"fmt"
	"time"

	"vsol_site/internal/model"

	"github.com/Masterminds/squirrel"
)

type referralRow struct {
	ID                int64   `db:"id"`
	ReferrerFirstName string  `db:"referrer_first_name"`
	ReferrerLastName  string  `db:"referrer_last_name"`
	LinkedinURL       string  `db:"referral_linkedin_url"`
	Email             string  `db:"referral_email"`
	Phone             *string `db:"referral_phone"`
	About             *string `db:"referral_about"`
	IPAddress         string  `db:"ip_address"`
	UserAgent         string  `db:"user_agent"`
	SubmittedAt       int64   `db:"submitted_at"`
}

func (row *referralRow) toModel() *model.Referral {
	return &model.Referral{
		ID:                row.ID,
		ReferrerFirstName: row.ReferrerFirstName,
		ReferrerLastName:  row.ReferrerLastName,
		LinkedinURL:       row.LinkedinURL,
		Email:             row.Email,
		Phone:             row.Phone,
		About:             row.About,
		IPAddress:         row.IPAddress,
		UserAgent:         row.UserAgent,
		SubmittedAt:       time.Unix(row.SubmittedAt, 0).UTC(),
	}
}

// CreateReferral appends a submission; rows are never updated afterwards.
func (r *Repository) CreateReferral(ctx context.Context, referral *model.Referral) error {
	if referral.SubmittedAt.IsZero() {
		referral.SubmittedAt = time.Now().UTC()
	}

	query, args, err := squirrel.
		Insert("referrals").
		SetMap(map[string]interface{}{
			"referrer_first_name":   referral.ReferrerFirstName,
			"referrer_last_name":    referral.ReferrerLastName,
			"referral_linkedin_url": referral.LinkedinURL,
			"referral_email":        referral.Email,
			"referral_phone":        referral.Phone,
			"referral_about":        referral.About,
			"ip_address":            referral.IPAddress,
			"user_agent":            referral.UserAgent,
			"submitted_at":          referral.SubmittedAt.Unix(),
		}).
		PlaceholderFormat(squirrel.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build referral insert query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert referral: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get referral id: %w", err)
	}
	referral.ID = id

	return nil
}

func (r *Repository) GetReferrals(ctx context.Context) ([]*model.Referral, error) {
	query, args, err := squirrel.
		Select("*").
		From("referrals").
		OrderBy("submitted_at DESC").
		PlaceholderFormat(squirrel.Question).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build referrals select query: %w", err)
	}

	var rows []referralRow
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get referrals: %w", err)
	}

	referrals := make([]*model.Referral, len(rows))
	for i := range rows {
		referrals[i] = rows[i].toModel()
	}

	return referrals, nil
}
