package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"vsol_site/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
)

type consentRow struct {
	DeviceID  string `db:"device_id"`
	Level     string `db:"level"`
	IssuedAt  int64  `db:"issued_at"`
	ExpiresAt int64  `db:"expires_at"`
}

func (r *Repository) GetConsent(ctx context.Context, deviceID string) (*model.ConsentRecord, error) {
	query, args, err := squirrel.
		Select("*").
		From("consents").
		Where(squirrel.Eq{"device_id": deviceID}).
		PlaceholderFormat(squirrel.Question).
		ToSql()
	if err != nil {
		return nil, err
	}

	var row consentRow
	err = r.db.GetContext(ctx, &row, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &model.ConsentRecord{
		DeviceID:  row.DeviceID,
		Level:     model.ConsentLevel(row.Level),
		IssuedAt:  time.Unix(row.IssuedAt, 0).UTC(),
		ExpiresAt: time.Unix(row.ExpiresAt, 0).UTC(),
	}, nil
}

// UpsertConsent replaces a device's prior decision in one statement, so
// readers never observe a missing record mid-update.
func (r *Repository) UpsertConsent(ctx context.Context, record *model.ConsentRecord) error {
	query, args, err := squirrel.
		Insert("consents").
		SetMap(map[string]interface{}{
			"device_id":  record.DeviceID,
			"level":      string(record.Level),
			"issued_at":  record.IssuedAt.Unix(),
			"expires_at": record.ExpiresAt.Unix(),
		}).
		Suffix("ON CONFLICT(device_id) DO UPDATE SET level = excluded.level, issued_at = excluded.issued_at, expires_at = excluded.expires_at").
		PlaceholderFormat(squirrel.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build consent upsert query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to upsert consent: %w", err)
	}

	return nil
}

func (r *Repository) DeleteConsent(ctx context.Context, deviceID string) error {
	query, args, err := squirrel.
		Delete("consents").
		Where(squirrel.Eq{"device_id": deviceID}).
		PlaceholderFormat(squirrel.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build consent delete query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete consent: %w", err)
	}

	return nil
}
