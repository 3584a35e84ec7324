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
	ErrSportNotFound     = errors.New("sport not found")
	ErrSportNameConflict = errors.New("sport name conflict")
	ErrSportInUse        = errors.New("sport cannot be deleted as it is in use")
)

type SportRepository interface {
	Create(ctx context.Context, sport *models.Sport) error
	GetByID(ctx context.Context, id int) (*models.Sport, error)
	GetAll(ctx context.Context) ([]models.Sport, error)
	Update(ctx context.Context, sport *models.Sport) error
	Delete(ctx context.Context, id int) error
}

type sqlSportRepository struct {
	db      *sql.DB
	dialect db.Dialect
}

func NewSQLSportRepository(conn *sql.DB, dialect db.Dialect) SportRepository {
	return &sqlSportRepository{db: conn, dialect: dialect}
}

func (r *sqlSportRepository) Create(ctx context.Context, sport *models.Sport) error {
	query := r.dialect.Rebind(`INSERT INTO sports (name) VALUES (?) RETURNING id`)

	err := r.db.QueryRowContext(ctx, query, sport.Name).Scan(&sport.ID)
	if err != nil {
		if r.dialect.IsUniqueViolation(err) {
			return ErrSportNameConflict
		}
		return err
	}
	return nil
}

func (r *sqlSportRepository) GetByID(ctx context.Context, id int) (*models.Sport, error) {
	query := r.dialect.Rebind(`SELECT id, name FROM sports WHERE id = ?`)

	var sport models.Sport
	err := r.db.QueryRowContext(ctx, query, id).Scan(&sport.ID, &sport.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSportNotFound
		}
		return nil, err
	}
	return &sport, nil
}

func (r *sqlSportRepository) GetAll(ctx context.Context) ([]models.Sport, error) {
	query := `SELECT id, name FROM sports ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sports := make([]models.Sport, 0)
	for rows.Next() {
		var sport models.Sport
		if scanErr := rows.Scan(&sport.ID, &sport.Name); scanErr != nil {
			return nil, scanErr
		}
		sports = append(sports, sport)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return sports, nil
}

func (r *sqlSportRepository) Update(ctx context.Context, sport *models.Sport) error {
	query := r.dialect.Rebind(`UPDATE sports SET name = ? WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, sport.Name, sport.ID)
	if err != nil {
		if r.dialect.IsUniqueViolation(err) {
			return ErrSportNameConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrSportNotFound)
}

func (r *sqlSportRepository) Delete(ctx context.Context, id int) error {
	query := r.dialect.Rebind(`DELETE FROM sports WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		// Results reference sports with ON DELETE RESTRICT.
		if r.dialect.IsForeignKeyViolation(err) {
			return ErrSportInUse
		}
		return fmt.Errorf("failed to delete sport %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrSportNotFound)
}
