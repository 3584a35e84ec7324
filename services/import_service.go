package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lp-esports/sports-day-system/models"
	"github.com/lp-esports/sports-day-system/repositories"
)

type ImportService interface {
	// ImportStudents parses a naive-CSV roster and inserts the students,
	// creating classes that do not exist yet. Validation is all-or-nothing:
	// any malformed line aborts the whole import before a single write.
	// Execution is best-effort: a failing row is counted and skipped.
	ImportStudents(ctx context.Context, payload string) (*ImportSummary, error)
}

type ImportSummary struct {
	Message   string            `json:"message"`
	Processed int               `json:"processed"`
	Failed    int               `json:"failed"`
	Students  []ImportedStudent `json:"students"`
}

type ImportedStudent struct {
	models.Student
	ClassName string `json:"class_name"`
}

type rosterRow struct {
	ClassName     string
	StudentNumber string
	NameZH        string
	NameEN        string
}

type importService struct {
	db          *sql.DB
	classRepo   repositories.ClassRepository
	studentRepo repositories.StudentRepository
	logger      *slog.Logger
}

func NewImportService(
	conn *sql.DB,
	classRepo repositories.ClassRepository,
	studentRepo repositories.StudentRepository,
	logger *slog.Logger,
) ImportService {
	return &importService{
		db:          conn,
		classRepo:   classRepo,
		studentRepo: studentRepo,
		logger:      logger,
	}
}

func (s *importService) ImportStudents(ctx context.Context, payload string) (*ImportSummary, error) {
	rows, lineErrors := parseRoster(payload)
	if len(lineErrors) > 0 {
		return nil, &ImportValidationError{Lines: lineErrors}
	}
	if len(rows) == 0 {
		return nil, ErrImportEmptyPayload
	}

	summary := &ImportSummary{Students: make([]ImportedStudent, 0, len(rows))}
	for _, row := range rows {
		student, err := s.importRow(ctx, row)
		if err != nil {
			summary.Failed++
			if s.logger != nil {
				s.logger.Warn("bulk import row failed",
					slog.String("class", row.ClassName),
					slog.String("student_number", row.StudentNumber),
					slog.Any("error", err),
				)
			}
			continue
		}
		summary.Processed++
		summary.Students = append(summary.Students, ImportedStudent{
			Student:   *student,
			ClassName: row.ClassName,
		})
	}

	summary.Message = fmt.Sprintf("imported %d students", summary.Processed)
	return summary, nil
}

// importRow resolves or creates the class and inserts the student inside a
// single transaction, so a concurrent import cannot interleave between the
// class lookup and the student insert. Losing a class-create race leaves the
// transaction unusable on postgres, so the row is retried from scratch; the
// second attempt finds the class the racer committed.
func (s *importService) importRow(ctx context.Context, row rosterRow) (*models.Student, error) {
	student, err := s.importRowTx(ctx, row)
	if errors.Is(err, repositories.ErrClassNameConflict) {
		student, err = s.importRowTx(ctx, row)
	}
	return student, err
}

func (s *importService) importRowTx(ctx context.Context, row rosterRow) (*models.Student, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	class, err := s.classRepo.GetByName(ctx, tx, row.ClassName)
	if errors.Is(err, repositories.ErrClassNotFound) {
		class = &models.Class{Name: row.ClassName}
		err = s.classRepo.Create(ctx, tx, class)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve class %q: %w", row.ClassName, err)
	}

	student := &models.Student{
		ClassID:       class.ID,
		StudentNumber: row.StudentNumber,
		NameZH:        row.NameZH,
		NameEN:        row.NameEN,
	}
	if err := s.studentRepo.Create(ctx, tx, student); err != nil {
		return nil, fmt.Errorf("failed to insert student %q: %w", row.StudentNumber, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import row: %w", err)
	}
	return student, nil
}

// parseRoster splits the payload into non-empty lines and parses each as a
// 4-field comma-separated record. The format is deliberately NOT RFC-4180:
// fields are split on every comma, trimmed, and stripped of all double
// quotes, matching what the roster spreadsheets actually export.
func parseRoster(payload string) ([]rosterRow, []string) {
	var (
		rows      []rosterRow
		lineErrs  []string
		lineCount int
	)

	for _, raw := range strings.Split(payload, "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if line == "" {
			continue
		}
		lineCount++

		fields := strings.Split(line, ",")
		for i := range fields {
			fields[i] = strings.ReplaceAll(strings.TrimSpace(fields[i]), `"`, "")
		}

		if len(fields) != 4 {
			lineErrs = append(lineErrs, fmt.Sprintf("line %d: expected 4 fields, got %d", lineCount, len(fields)))
			continue
		}
		if fields[0] == "" || fields[1] == "" || fields[2] == "" || fields[3] == "" {
			lineErrs = append(lineErrs, fmt.Sprintf("line %d: incomplete record", lineCount))
			continue
		}

		rows = append(rows, rosterRow{
			ClassName:     fields[0],
			StudentNumber: fields[1],
			NameZH:        fields[2],
			NameEN:        fields[3],
		})
	}

	return rows, lineErrs
}
