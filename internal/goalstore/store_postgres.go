// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package goalstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/pacer/internal/pacer"
	"github.com/taibuivan/pacer/internal/platform/apperr"
	"github.com/taibuivan/pacer/internal/platform/database/schema"
	"github.com/taibuivan/pacer/internal/platform/dberr"
)

// goalRepository implements [GoalRepository] against the domain store.
type goalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository constructs a PostgreSQL-backed goal repository.
func NewGoalRepository(pool *pgxpool.Pool) GoalRepository {
	return &goalRepository{pool: pool}
}

/*
InsertMany pre-validates every goal's (uname) and (sym, seq) pair inside
the same transaction that performs the insert, so the whole batch is
refused atomically on any unknown reference — never a partial commit.
*/
func (repository *goalRepository) InsertMany(ctx context.Context, goals []pacer.Goal) (int, error) {
	if len(goals) == 0 {
		return 0, nil
	}

	for _, g := range goals {
		if err := validateGoal(g); err != nil {
			return 0, err
		}
	}

	tx, err := repository.pool.Begin(ctx)
	if err != nil {
		return 0, dberr.Wrap(err, "goals")
	}
	defer tx.Rollback(ctx)

	unames := make(map[string]struct{})
	syms := make(map[[2]any]struct{})
	for _, g := range goals {
		unames[g.Uname] = struct{}{}
		syms[[2]any{g.Source.Sym, g.Source.Seq}] = struct{}{}
	}

	unameList := make([]string, 0, len(unames))
	for u := range unames {
		unameList = append(unameList, u)
	}

	var knownUnames int
	unameQuery := fmt.Sprintf(`SELECT COUNT(DISTINCT %s) FROM %s WHERE %s = ANY($1)`,
		schema.Students.Uname, schema.Students.Table, schema.Students.Uname)
	if err := tx.QueryRow(ctx, unameQuery, unameList).Scan(&knownUnames); err != nil {
		return 0, dberr.Wrap(err, "goals")
	}
	if knownUnames != len(unameList) {
		return 0, apperr.ValidationError("batch references an unknown student uname")
	}

	for key := range syms {
		sym, seq := key[0].(string), key[1].(int16)
		var exists bool
		chapterQuery := fmt.Sprintf(
			`SELECT EXISTS (SELECT 1 FROM %s ch JOIN %s c ON ch.%s = c.%s WHERE c.%s = $1 AND ch.%s = $2)`,
			schema.Chapters.Table, schema.Courses.Table, schema.Chapters.Course, schema.Courses.ID,
			schema.Courses.Sym, schema.Chapters.Sequence,
		)
		if err := tx.QueryRow(ctx, chapterQuery, sym, seq).Scan(&exists); err != nil {
			return 0, dberr.Wrap(err, "goals")
		}
		if !exists {
			return 0, apperr.ValidationError(fmt.Sprintf("batch references unknown course/chapter %s#%d", sym, seq))
		}
	}

	insertQuery := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		schema.Goals.Table, schema.Goals.Uname, schema.Goals.Sym, schema.Goals.Seq, schema.Goals.Review,
		schema.Goals.Incomplete, schema.Goals.Due, schema.Goals.Done, schema.Goals.Tries, schema.Goals.Score,
	)

	batch := &pgx.Batch{}
	for _, g := range goals {
		batch.Queue(insertQuery, g.Uname, g.Source.Sym, g.Source.Seq, g.Review, g.Incomplete, g.Due, g.Done, g.Tries, scoreToColumn(g.Score))
	}

	results := tx.SendBatch(ctx, batch)
	for range goals {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return 0, dberr.Wrap(err, "goals")
		}
	}
	if err := results.Close(); err != nil {
		return 0, dberr.Wrap(err, "goals")
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, dberr.Wrap(err, "goals")
	}

	return len(goals), nil
}

// Update updates everything except id/uname.
func (repository *goalRepository) Update(ctx context.Context, goal pacer.Goal) error {
	if err := validateGoal(goal); err != nil {
		return err
	}

	var exists bool
	chapterQuery := fmt.Sprintf(
		`SELECT EXISTS (SELECT 1 FROM %s ch JOIN %s c ON ch.%s = c.%s WHERE c.%s = $1 AND ch.%s = $2)`,
		schema.Chapters.Table, schema.Courses.Table, schema.Chapters.Course, schema.Courses.ID,
		schema.Courses.Sym, schema.Chapters.Sequence,
	)
	if err := repository.pool.QueryRow(ctx, chapterQuery, goal.Source.Sym, goal.Source.Seq).Scan(&exists); err != nil {
		return dberr.Wrap(err, "goal")
	}
	if !exists {
		return apperr.ValidationError(fmt.Sprintf("goal references unknown course/chapter %s#%d", goal.Source.Sym, goal.Source.Seq))
	}

	query := fmt.Sprintf(
		`UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8
		 WHERE %s = $9`,
		schema.Goals.Table, schema.Goals.Sym, schema.Goals.Seq, schema.Goals.Review, schema.Goals.Incomplete,
		schema.Goals.Due, schema.Goals.Done, schema.Goals.Tries, schema.Goals.Score, schema.Goals.ID,
	)

	tag, err := repository.pool.Exec(ctx, query,
		goal.Source.Sym, goal.Source.Seq, goal.Review, goal.Incomplete,
		goal.Due, goal.Done, goal.Tries, scoreToColumn(goal.Score), goal.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "goal")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("goal")
	}
	return nil
}

// Delete removes a goal and returns its owner's uname.
func (repository *goalRepository) Delete(ctx context.Context, id int64) (string, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 RETURNING %s`,
		schema.Goals.Table, schema.Goals.ID, schema.Goals.Uname)

	var uname string
	if err := repository.pool.QueryRow(ctx, query, id).Scan(&uname); err != nil {
		return "", dberr.Wrap(err, "goal")
	}
	return uname, nil
}

// ByStudent returns every goal owned by uname.
func (repository *goalRepository) ByStudent(ctx context.Context, uname string) ([]pacer.Goal, error) {
	query := fmt.Sprintf(
		`SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		 FROM %s WHERE %s = $1`,
		schema.Goals.ID, schema.Goals.Uname, schema.Goals.Sym, schema.Goals.Seq, schema.Goals.Review,
		schema.Goals.Incomplete, schema.Goals.Due, schema.Goals.Done, schema.Goals.Tries, schema.Goals.Score,
		schema.Goals.Table, schema.Goals.Uname,
	)

	return repository.scanGoals(ctx, query, uname)
}

// ByTeacher returns every goal owned by a student of tuname.
func (repository *goalRepository) ByTeacher(ctx context.Context, tuname string) ([]pacer.Goal, error) {
	query := fmt.Sprintf(
		`SELECT g.%s, g.%s, g.%s, g.%s, g.%s, g.%s, g.%s, g.%s, g.%s, g.%s
		 FROM %s g JOIN %s s ON g.%s = s.%s
		 WHERE s.%s = $1`,
		schema.Goals.ID, schema.Goals.Uname, schema.Goals.Sym, schema.Goals.Seq, schema.Goals.Review,
		schema.Goals.Incomplete, schema.Goals.Due, schema.Goals.Done, schema.Goals.Tries, schema.Goals.Score,
		schema.Goals.Table, schema.Students.Table, schema.Goals.Uname, schema.Students.Uname,
		schema.Students.Teacher,
	)

	return repository.scanGoals(ctx, query, tuname)
}

func (repository *goalRepository) scanGoals(ctx context.Context, query string, arg any) ([]pacer.Goal, error) {
	rows, err := repository.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, dberr.Wrap(err, "goals")
	}
	defer rows.Close()

	var goals []pacer.Goal
	for rows.Next() {
		var g pacer.Goal
		var score *float64
		if err := rows.Scan(&g.ID, &g.Uname, &g.Source.Sym, &g.Source.Seq, &g.Review, &g.Incomplete, &g.Due, &g.Done, &g.Tries, &score); err != nil {
			return nil, dberr.Wrap(err, "goals")
		}
		g.Score = score
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// UpdateDueDates bulk-updates only the due field of each goal.
func (repository *goalRepository) UpdateDueDates(ctx context.Context, goals []pacer.Goal) error {
	if len(goals) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`, schema.Goals.Table, schema.Goals.Due, schema.Goals.ID)

	batch := &pgx.Batch{}
	for _, g := range goals {
		batch.Queue(query, g.Due, g.ID)
	}

	results := repository.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range goals {
		if _, err := results.Exec(); err != nil {
			return dberr.Wrap(err, "goals")
		}
	}
	return nil
}

// ClearForStudent deletes every goal owned by uname.
func (repository *goalRepository) ClearForStudent(ctx context.Context, uname string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Goals.Table, schema.Goals.Uname)
	_, err := repository.pool.Exec(ctx, query, uname)
	return dberr.Wrap(err, "goals")
}

// validateGoal enforces the done-requires-score invariant: a goal cannot be
// marked done without a score, since the Pacing Engine's semester summary
// silently drops done-without-score goals rather than erroring, which would
// understate a student's test average.
func validateGoal(g pacer.Goal) error {
	if g.Done != nil && g.Score == nil {
		return apperr.ValidationError(fmt.Sprintf("goal %d has a done date but no score", g.ID))
	}
	return nil
}

// scoreToColumn renders a score as the lowercase-hex-free raw fraction
// string stored in the goals.score TEXT column, or nil for an unscored goal.
func scoreToColumn(score *float64) *string {
	if score == nil {
		return nil
	}
	s := fmt.Sprintf("%.6f", *score)
	return &s
}
