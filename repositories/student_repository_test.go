package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/lp-esports/sports-day-system/models"
	"github.com/lp-esports/sports-day-system/testutil"
)

func TestStudentRepository_ListFiltersByClass(t *testing.T) {
	conn, dialect := testutil.NewTestDB(t)
	classRepo := NewSQLClassRepository(conn, dialect)
	repo := NewSQLStudentRepository(conn, dialect)
	ctx := context.Background()

	classA := &models.Class{Name: "2A"}
	classB := &models.Class{Name: "2B"}
	for _, c := range []*models.Class{classA, classB} {
		if err := classRepo.Create(ctx, nil, c); err != nil {
			t.Fatalf("create class failed: %v", err)
		}
	}

	seed := []*models.Student{
		{ClassID: classA.ID, StudentNumber: "01", NameZH: "一", NameEN: "One"},
		{ClassID: classA.ID, StudentNumber: "02", NameZH: "二", NameEN: "Two"},
		{ClassID: classB.ID, StudentNumber: "01", NameZH: "三", NameEN: "Three"},
	}
	for _, s := range seed {
		if err := repo.Create(ctx, nil, s); err != nil {
			t.Fatalf("create student failed: %v", err)
		}
	}

	all, err := repo.List(ctx, nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 students, got %d", len(all))
	}

	onlyA, err := repo.List(ctx, &classA.ID)
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if len(onlyA) != 2 {
		t.Fatalf("expected 2 students in 2A, got %d", len(onlyA))
	}
	for _, s := range onlyA {
		if s.ClassID != classA.ID {
			t.Fatalf("student %d leaked from another class", s.ID)
		}
	}
}

func TestStudentRepository_FindByClassAndNumber(t *testing.T) {
	conn, dialect := testutil.NewTestDB(t)
	classRepo := NewSQLClassRepository(conn, dialect)
	repo := NewSQLStudentRepository(conn, dialect)
	ctx := context.Background()

	class := &models.Class{Name: "5A"}
	if err := classRepo.Create(ctx, nil, class); err != nil {
		t.Fatalf("create class failed: %v", err)
	}
	student := &models.Student{ClassID: class.ID, StudentNumber: "21", NameZH: "廿一", NameEN: "TwentyOne"}
	if err := repo.Create(ctx, nil, student); err != nil {
		t.Fatalf("create student failed: %v", err)
	}

	found, err := repo.FindByClassAndNumber(ctx, class.ID, "21")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if found.ID != student.ID {
		t.Fatalf("expected student %d, got %d", student.ID, found.ID)
	}

	if _, err := repo.FindByClassAndNumber(ctx, class.ID, "99"); !errors.Is(err, ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestStudentRepository_CreateWithUnknownClass(t *testing.T) {
	conn, dialect := testutil.NewTestDB(t)
	repo := NewSQLStudentRepository(conn, dialect)

	err := repo.Create(context.Background(), nil, &models.Student{
		ClassID:       12345,
		StudentNumber: "01",
		NameZH:        "無",
		NameEN:        "Nobody",
	})
	if !errors.Is(err, ErrStudentClassInvalid) {
		t.Fatalf("expected ErrStudentClassInvalid, got %v", err)
	}
}

func TestStudentRepository_DeleteCascadesResults(t *testing.T) {
	conn, dialect := testutil.NewTestDB(t)
	classRepo := NewSQLClassRepository(conn, dialect)
	sportRepo := NewSQLSportRepository(conn, dialect)
	studentRepo := NewSQLStudentRepository(conn, dialect)
	resultRepo := NewSQLResultRepository(conn, dialect)
	ctx := context.Background()

	class := &models.Class{Name: "3C"}
	if err := classRepo.Create(ctx, nil, class); err != nil {
		t.Fatalf("create class failed: %v", err)
	}
	sport := &models.Sport{Name: "Long Jump"}
	if err := sportRepo.Create(ctx, sport); err != nil {
		t.Fatalf("create sport failed: %v", err)
	}
	student := &models.Student{ClassID: class.ID, StudentNumber: "07", NameZH: "七", NameEN: "Seven"}
	if err := studentRepo.Create(ctx, nil, student); err != nil {
		t.Fatalf("create student failed: %v", err)
	}
	result := &models.Result{StudentID: student.ID, SportID: sport.ID, TimeMin: 0, TimeSec: 42}
	if err := resultRepo.Create(ctx, nil, result); err != nil {
		t.Fatalf("create result failed: %v", err)
	}

	// Deleting the student takes the result with it.
	if err := studentRepo.Delete(ctx, student.ID); err != nil {
		t.Fatalf("delete student failed: %v", err)
	}
	if _, err := resultRepo.GetByID(ctx, result.ID); !errors.Is(err, ErrResultNotFound) {
		t.Fatalf("expected result to cascade away, got %v", err)
	}
}
