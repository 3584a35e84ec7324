package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/lp-esports/sports-day-system/models"
	"github.com/lp-esports/sports-day-system/testutil"
)

func TestSportRepository_DuplicateNameConflict(t *testing.T) {
	conn, dialect := testutil.NewTestDB(t)
	repo := NewSQLSportRepository(conn, dialect)
	ctx := context.Background()

	if err := repo.Create(ctx, &models.Sport{Name: "Long Jump"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	err := repo.Create(ctx, &models.Sport{Name: "Long Jump"})
	if !errors.Is(err, ErrSportNameConflict) {
		t.Fatalf("expected ErrSportNameConflict, got %v", err)
	}
}

func TestSportRepository_DeleteInUse(t *testing.T) {
	conn, dialect := testutil.NewTestDB(t)
	classRepo := NewSQLClassRepository(conn, dialect)
	studentRepo := NewSQLStudentRepository(conn, dialect)
	sportRepo := NewSQLSportRepository(conn, dialect)
	resultRepo := NewSQLResultRepository(conn, dialect)
	ctx := context.Background()

	class := &models.Class{Name: "5C"}
	if err := classRepo.Create(ctx, nil, class); err != nil {
		t.Fatalf("create class failed: %v", err)
	}
	student := &models.Student{ClassID: class.ID, StudentNumber: "12", NameZH: "測試", NameEN: "Test"}
	if err := studentRepo.Create(ctx, nil, student); err != nil {
		t.Fatalf("create student failed: %v", err)
	}
	sport := &models.Sport{Name: "200m Sprint"}
	if err := sportRepo.Create(ctx, sport); err != nil {
		t.Fatalf("create sport failed: %v", err)
	}
	result := &models.Result{StudentID: student.ID, SportID: sport.ID, TimeMin: 0, TimeSec: 31}
	if err := resultRepo.Create(ctx, nil, result); err != nil {
		t.Fatalf("create result failed: %v", err)
	}

	// Deleting a sport with recorded results must be refused, not fail
	// with a generic error.
	if err := sportRepo.Delete(ctx, sport.ID); !errors.Is(err, ErrSportInUse) {
		t.Fatalf("expected ErrSportInUse, got %v", err)
	}

	if err := resultRepo.Delete(ctx, result.ID); err != nil {
		t.Fatalf("delete result failed: %v", err)
	}
	if err := sportRepo.Delete(ctx, sport.ID); err != nil {
		t.Fatalf("delete after results removed failed: %v", err)
	}
}
