// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package domainstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/pacer/internal/platform/database/schema"
	"github.com/taibuivan/pacer/internal/platform/dberr"
)

/*
ReplaceCalendar bulk-replaces the full set of instructional days: every
existing row is deleted and the supplied days are inserted, within one
transaction, so a reader never observes a partially-replaced calendar.
*/
func (l *Loader) ReplaceCalendar(ctx context.Context, days []time.Time) error {
	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "calendar")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s`, schema.Calendar.Table)); err != nil {
		return dberr.Wrap(err, "calendar")
	}

	insert := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1)`, schema.Calendar.Table, schema.Calendar.Day)
	batch := &pgx.Batch{}
	for _, day := range days {
		batch.Queue(insert, day)
	}

	results := tx.SendBatch(ctx, batch)
	for range days {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return dberr.Wrap(err, "calendar")
		}
	}
	if err := results.Close(); err != nil {
		return dberr.Wrap(err, "calendar")
	}

	return dberr.Wrap(tx.Commit(ctx), "calendar")
}

// UpsertNamedDate sets a single named date, e.g. "end-fall", to day.
func (l *Loader) UpsertNamedDate(ctx context.Context, name string, day time.Time) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s) VALUES ($1, $2)
		 ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s`,
		schema.Dates.Table, schema.Dates.Name, schema.Dates.Day,
		schema.Dates.Name, schema.Dates.Day, schema.Dates.Day,
	)
	_, err := l.pool.Exec(ctx, query, name, day)
	return dberr.Wrap(err, "dates")
}

// ReplaceNamedDates bulk-replaces the full named-date map within one
// transaction.
func (l *Loader) ReplaceNamedDates(ctx context.Context, dates map[string]time.Time) error {
	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "dates")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s`, schema.Dates.Table)); err != nil {
		return dberr.Wrap(err, "dates")
	}

	insert := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`, schema.Dates.Table, schema.Dates.Name, schema.Dates.Day)
	batch := &pgx.Batch{}
	for name, day := range dates {
		batch.Queue(insert, name, day)
	}

	results := tx.SendBatch(ctx, batch)
	for range dates {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return dberr.Wrap(err, "dates")
		}
	}
	if err := results.Close(); err != nil {
		return dberr.Wrap(err, "dates")
	}

	return dberr.Wrap(tx.Commit(ctx), "dates")
}
