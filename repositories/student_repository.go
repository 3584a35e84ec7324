package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lp-esports/sports-day-system/db"
	"github.com/lp-esports/sports-day-system/models"
)

var (
	ErrStudentNotFound     = errors.New("student not found")
	ErrStudentClassInvalid = errors.New("student references an unknown class")
	ErrStudentInUse        = errors.New("student cannot be deleted as it is in use")
)

type StudentRepository interface {
	Create(ctx context.Context, exec SQLExecutor, student *models.Student) error
	GetByID(ctx context.Context, id int) (*models.Student, error)
	List(ctx context.Context, classID *int) ([]models.Student, error)
	FindByClassAndNumber(ctx context.Context, classID int, studentNumber string) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int) error
}

type sqlStudentRepository struct {
	db      *sql.DB
	dialect db.Dialect
}

func NewSQLStudentRepository(conn *sql.DB, dialect db.Dialect) StudentRepository {
	return &sqlStudentRepository{db: conn, dialect: dialect}
}

func (r *sqlStudentRepository) Create(ctx context.Context, exec SQLExecutor, student *models.Student) error {
	if exec == nil {
		exec = r.db
	}
	query := r.dialect.Rebind(`
		INSERT INTO students (class_id, student_number, name_zh, name_en)
		VALUES (?, ?, ?, ?)
		RETURNING id`)

	err := exec.QueryRowContext(ctx, query,
		student.ClassID,
		student.StudentNumber,
		student.NameZH,
		student.NameEN,
	).Scan(&student.ID)
	if err != nil {
		if r.dialect.IsForeignKeyViolation(err) {
			return ErrStudentClassInvalid
		}
		return err
	}
	return nil
}

func (r *sqlStudentRepository) GetByID(ctx context.Context, id int) (*models.Student, error) {
	query := r.dialect.Rebind(`
		SELECT id, class_id, student_number, name_zh, name_en
		FROM students
		WHERE id = ?`)

	var student models.Student
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&student.ID,
		&student.ClassID,
		&student.StudentNumber,
		&student.NameZH,
		&student.NameEN,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &student, nil
}

func (r *sqlStudentRepository) List(ctx context.Context, classID *int) ([]models.Student, error) {
	query := `SELECT id, class_id, student_number, name_zh, name_en FROM students`
	args := []interface{}{}
	if classID != nil {
		query += ` WHERE class_id = ?`
		args = append(args, *classID)
	}
	query += ` ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]models.Student, 0)
	for rows.Next() {
		var student models.Student
		if scanErr := rows.Scan(
			&student.ID,
			&student.ClassID,
			&student.StudentNumber,
			&student.NameZH,
			&student.NameEN,
		); scanErr != nil {
			return nil, scanErr
		}
		students = append(students, student)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return students, nil
}

func (r *sqlStudentRepository) FindByClassAndNumber(ctx context.Context, classID int, studentNumber string) (*models.Student, error) {
	query := r.dialect.Rebind(`
		SELECT id, class_id, student_number, name_zh, name_en
		FROM students
		WHERE class_id = ? AND student_number = ?`)

	var student models.Student
	err := r.db.QueryRowContext(ctx, query, classID, studentNumber).Scan(
		&student.ID,
		&student.ClassID,
		&student.StudentNumber,
		&student.NameZH,
		&student.NameEN,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &student, nil
}

func (r *sqlStudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := r.dialect.Rebind(`
		UPDATE students
		SET class_id = ?, student_number = ?, name_zh = ?, name_en = ?
		WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query,
		student.ClassID,
		student.StudentNumber,
		student.NameZH,
		student.NameEN,
		student.ID,
	)
	if err != nil {
		if r.dialect.IsForeignKeyViolation(err) {
			return ErrStudentClassInvalid
		}
		return err
	}
	return checkAffectedRows(result, ErrStudentNotFound)
}

func (r *sqlStudentRepository) Delete(ctx context.Context, id int) error {
	query := r.dialect.Rebind(`DELETE FROM students WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if r.dialect.IsForeignKeyViolation(err) {
			return ErrStudentInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrStudentNotFound)
}
