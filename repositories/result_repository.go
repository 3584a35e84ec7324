package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lp-esports/sports-day-system/db"
	"github.com/lp-esports/sports-day-system/models"
)

var (
	ErrResultNotFound         = errors.New("result not found")
	ErrResultConflict         = errors.New("result already exists for this student and sport")
	ErrResultReferenceInvalid = errors.New("result references an unknown student or sport")
)

type ResultRepository interface {
	Create(ctx context.Context, exec SQLExecutor, result *models.Result) error
	GetByID(ctx context.Context, id int) (*models.Result, error)
	// GetByStudentAndSport looks up the single row for a (student, sport)
	// pair. With forUpdate the row is locked for the enclosing transaction
	// on engines that support it.
	GetByStudentAndSport(ctx context.Context, exec SQLExecutor, studentID, sportID int, forUpdate bool) (*models.Result, error)
	// ReplaceTime overwrites the stored time (and optionally the photo) of
	// an existing row, refreshing created_at.
	ReplaceTime(ctx context.Context, exec SQLExecutor, result *models.Result) error
	// UpdateByID is the admin correction path: unconditional overwrite,
	// photo only when a new key is supplied.
	UpdateByID(ctx context.Context, id, timeMin, timeSec int, photoKey *string) error
	Delete(ctx context.Context, id int) error
}

type sqlResultRepository struct {
	db      *sql.DB
	dialect db.Dialect
}

func NewSQLResultRepository(conn *sql.DB, dialect db.Dialect) ResultRepository {
	return &sqlResultRepository{db: conn, dialect: dialect}
}

func (r *sqlResultRepository) Create(ctx context.Context, exec SQLExecutor, result *models.Result) error {
	if exec == nil {
		exec = r.db
	}
	query := r.dialect.Rebind(`
		INSERT INTO results (student_id, sport_id, time_min, time_sec, photo_key, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`)

	err := exec.QueryRowContext(ctx, query,
		result.StudentID,
		result.SportID,
		result.TimeMin,
		result.TimeSec,
		result.PhotoKey,
		result.CreatedAt,
	).Scan(&result.ID)
	if err != nil {
		if r.dialect.IsUniqueViolation(err) {
			return ErrResultConflict
		}
		if r.dialect.IsForeignKeyViolation(err) {
			return ErrResultReferenceInvalid
		}
		return err
	}
	return nil
}

func (r *sqlResultRepository) GetByID(ctx context.Context, id int) (*models.Result, error) {
	query := r.dialect.Rebind(`
		SELECT id, student_id, sport_id, time_min, time_sec, photo_key, created_at
		FROM results
		WHERE id = ?`)

	result := &models.Result{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&result.ID,
		&result.StudentID,
		&result.SportID,
		&result.TimeMin,
		&result.TimeSec,
		&result.PhotoKey,
		&result.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to scan result %d: %w", id, err)
	}
	return result, nil
}

func (r *sqlResultRepository) GetByStudentAndSport(ctx context.Context, exec SQLExecutor, studentID, sportID int, forUpdate bool) (*models.Result, error) {
	if exec == nil {
		exec = r.db
	}
	query := `
		SELECT id, student_id, sport_id, time_min, time_sec, photo_key, created_at
		FROM results
		WHERE student_id = ? AND sport_id = ?`
	if forUpdate {
		query += r.dialect.ForUpdate()
	}

	result := &models.Result{}
	err := exec.QueryRowContext(ctx, r.dialect.Rebind(query), studentID, sportID).Scan(
		&result.ID,
		&result.StudentID,
		&result.SportID,
		&result.TimeMin,
		&result.TimeSec,
		&result.PhotoKey,
		&result.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResultNotFound
		}
		return nil, err
	}
	return result, nil
}

func (r *sqlResultRepository) ReplaceTime(ctx context.Context, exec SQLExecutor, result *models.Result) error {
	if exec == nil {
		exec = r.db
	}
	query := r.dialect.Rebind(`
		UPDATE results
		SET time_min = ?, time_sec = ?, photo_key = ?, created_at = ?
		WHERE id = ?`)

	res, err := exec.ExecContext(ctx, query,
		result.TimeMin,
		result.TimeSec,
		result.PhotoKey,
		result.CreatedAt,
		result.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(res, ErrResultNotFound)
}

func (r *sqlResultRepository) UpdateByID(ctx context.Context, id, timeMin, timeSec int, photoKey *string) error {
	query := `UPDATE results SET time_min = ?, time_sec = ?`
	args := []interface{}{timeMin, timeSec}
	if photoKey != nil {
		query += `, photo_key = ?`
		args = append(args, *photoKey)
	}
	query += ` WHERE id = ?`
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return err
	}
	return checkAffectedRows(res, ErrResultNotFound)
}

func (r *sqlResultRepository) Delete(ctx context.Context, id int) error {
	query := r.dialect.Rebind(`DELETE FROM results WHERE id = ?`)

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(res, ErrResultNotFound)
}
