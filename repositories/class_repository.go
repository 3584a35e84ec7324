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
	ErrClassNotFound     = errors.New("class not found")
	ErrClassNameConflict = errors.New("class name conflict")
	ErrClassInUse        = errors.New("class cannot be deleted as it is in use")
)

type ClassRepository interface {
	Create(ctx context.Context, exec SQLExecutor, class *models.Class) error
	GetByID(ctx context.Context, id int) (*models.Class, error)
	GetByName(ctx context.Context, exec SQLExecutor, name string) (*models.Class, error)
	GetAll(ctx context.Context) ([]models.Class, error)
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id int) error
}

type sqlClassRepository struct {
	db      *sql.DB
	dialect db.Dialect
}

func NewSQLClassRepository(conn *sql.DB, dialect db.Dialect) ClassRepository {
	return &sqlClassRepository{db: conn, dialect: dialect}
}

func (r *sqlClassRepository) Create(ctx context.Context, exec SQLExecutor, class *models.Class) error {
	if exec == nil {
		exec = r.db
	}
	query := r.dialect.Rebind(`INSERT INTO classes (name) VALUES (?) RETURNING id`)

	err := exec.QueryRowContext(ctx, query, class.Name).Scan(&class.ID)
	if err != nil {
		if r.dialect.IsUniqueViolation(err) {
			return ErrClassNameConflict
		}
		return err
	}
	return nil
}

func (r *sqlClassRepository) GetByID(ctx context.Context, id int) (*models.Class, error) {
	query := r.dialect.Rebind(`SELECT id, name FROM classes WHERE id = ?`)

	var class models.Class
	err := r.db.QueryRowContext(ctx, query, id).Scan(&class.ID, &class.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return &class, nil
}

func (r *sqlClassRepository) GetByName(ctx context.Context, exec SQLExecutor, name string) (*models.Class, error) {
	if exec == nil {
		exec = r.db
	}
	query := r.dialect.Rebind(`SELECT id, name FROM classes WHERE name = ?`)

	var class models.Class
	err := exec.QueryRowContext(ctx, query, name).Scan(&class.ID, &class.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return &class, nil
}

func (r *sqlClassRepository) GetAll(ctx context.Context) ([]models.Class, error) {
	query := `SELECT id, name FROM classes ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := make([]models.Class, 0)
	for rows.Next() {
		var class models.Class
		if scanErr := rows.Scan(&class.ID, &class.Name); scanErr != nil {
			return nil, scanErr
		}
		classes = append(classes, class)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *sqlClassRepository) Update(ctx context.Context, class *models.Class) error {
	query := r.dialect.Rebind(`UPDATE classes SET name = ? WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, class.Name, class.ID)
	if err != nil {
		if r.dialect.IsUniqueViolation(err) {
			return ErrClassNameConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrClassNotFound)
}

func (r *sqlClassRepository) Delete(ctx context.Context, id int) error {
	query := r.dialect.Rebind(`DELETE FROM classes WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		// Students reference classes with ON DELETE RESTRICT.
		if r.dialect.IsForeignKeyViolation(err) {
			return ErrClassInUse
		}
		return fmt.Errorf("failed to delete class %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrClassNotFound)
}
