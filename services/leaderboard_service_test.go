package services

import (
	"context"
	"testing"

	"github.com/lp-esports/sports-day-system/models"
	"github.com/lp-esports/sports-day-system/repositories"
	"github.com/lp-esports/sports-day-system/testutil"
)

type leaderboardFixture struct {
	service LeaderboardService

	classA, classB   int
	sprint, relay    int
	fast, mid, other int
}

// newLeaderboardFixture seeds two classes, two sports and three results:
//
//	sprint: fast(A) 0:55, mid(A) 1:10, other(B) 1:05
//	relay:  fast(A) 2:00
func newLeaderboardFixture(t *testing.T) *leaderboardFixture {
	t.Helper()
	conn, dialect := testutil.NewTestDB(t)
	ctx := context.Background()

	classRepo := repositories.NewSQLClassRepository(conn, dialect)
	sportRepo := repositories.NewSQLSportRepository(conn, dialect)
	studentRepo := repositories.NewSQLStudentRepository(conn, dialect)
	resultRepo := repositories.NewSQLResultRepository(conn, dialect)

	f := &leaderboardFixture{
		service: NewLeaderboardService(
			repositories.NewSQLLeaderboardRepository(conn, dialect),
			newMemUploader(),
		),
	}

	classA := &models.Class{Name: "1A"}
	classB := &models.Class{Name: "1B"}
	for _, c := range []*models.Class{classA, classB} {
		if err := classRepo.Create(ctx, nil, c); err != nil {
			t.Fatalf("failed to create class: %v", err)
		}
	}
	f.classA, f.classB = classA.ID, classB.ID

	sprint := &models.Sport{Name: "Sprint"}
	relay := &models.Sport{Name: "Relay"}
	for _, s := range []*models.Sport{sprint, relay} {
		if err := sportRepo.Create(ctx, s); err != nil {
			t.Fatalf("failed to create sport: %v", err)
		}
	}
	f.sprint, f.relay = sprint.ID, relay.ID

	fast := &models.Student{ClassID: classA.ID, StudentNumber: "01", NameZH: "快", NameEN: "Fast"}
	mid := &models.Student{ClassID: classA.ID, StudentNumber: "02", NameZH: "中", NameEN: "Mid"}
	other := &models.Student{ClassID: classB.ID, StudentNumber: "01", NameZH: "別", NameEN: "Other"}
	for _, s := range []*models.Student{fast, mid, other} {
		if err := studentRepo.Create(ctx, nil, s); err != nil {
			t.Fatalf("failed to create student: %v", err)
		}
	}
	f.fast, f.mid, f.other = fast.ID, mid.ID, other.ID

	seed := []struct {
		student, sport, min, sec int
	}{
		{fast.ID, sprint.ID, 0, 55},
		{mid.ID, sprint.ID, 1, 10},
		{other.ID, sprint.ID, 1, 5},
		{fast.ID, relay.ID, 2, 0},
	}
	for _, r := range seed {
		result := &models.Result{
			StudentID: r.student,
			SportID:   r.sport,
			TimeMin:   r.min,
			TimeSec:   r.sec,
		}
		if err := resultRepo.Create(ctx, nil, result); err != nil {
			t.Fatalf("failed to seed result: %v", err)
		}
	}
	return f
}

func TestLeaderboard_OrderedFastestFirst(t *testing.T) {
	f := newLeaderboardFixture(t)

	entries, err := f.service.List(context.Background(), &f.sprint, nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 sprint entries, got %d", len(entries))
	}

	want := []int{f.fast, f.other, f.mid}
	for i, studentID := range want {
		if entries[i].StudentID != studentID {
			t.Fatalf("position %d: expected student %d, got %d", i, studentID, entries[i].StudentID)
		}
	}
}

func TestLeaderboard_FiltersAreConjunctive(t *testing.T) {
	f := newLeaderboardFixture(t)

	entries, err := f.service.List(context.Background(), &f.sprint, &f.classA)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries for sprint+1A, got %d", len(entries))
	}
	for _, e := range entries {
		if e.ClassName != "1A" || e.SportName != "Sprint" {
			t.Fatalf("entry violates filters: %+v", e)
		}
	}
}

func TestLeaderboard_NoFiltersReturnsEverything(t *testing.T) {
	f := newLeaderboardFixture(t)

	entries, err := f.service.List(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected all 4 entries, got %d", len(entries))
	}
}

func TestShowcase_PartitionsBySport(t *testing.T) {
	f := newLeaderboardFixture(t)

	groups, err := f.service.Showcase(context.Background())
	if err != nil {
		t.Fatalf("showcase failed: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 sport groups, got %d", len(groups))
	}

	bySport := make(map[int]models.ShowcaseGroup, len(groups))
	for _, g := range groups {
		bySport[g.SportID] = g
	}

	sprintGroup, ok := bySport[f.sprint]
	if !ok {
		t.Fatal("showcase missing the sprint group")
	}
	if len(sprintGroup.Results) != 3 {
		t.Fatalf("expected 3 sprint results, got %d", len(sprintGroup.Results))
	}
	if sprintGroup.Results[0].StudentID != f.fast {
		t.Fatalf("sprint group must be ordered fastest-first, got student %d", sprintGroup.Results[0].StudentID)
	}

	relayGroup, ok := bySport[f.relay]
	if !ok {
		t.Fatal("showcase missing the relay group")
	}
	if len(relayGroup.Results) != 1 || relayGroup.SportName != "Relay" {
		t.Fatalf("unexpected relay group: %+v", relayGroup)
	}
}

func TestExportXLSX_WritesFilteredRows(t *testing.T) {
	f := newLeaderboardFixture(t)

	workbook, err := f.service.ExportXLSX(context.Background(), &f.sprint, nil)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	defer workbook.Close()

	rows, err := workbook.GetRows("Leaderboard")
	if err != nil {
		t.Fatalf("failed to read workbook rows: %v", err)
	}
	// Header plus three sprint entries.
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0][0] != "Rank" {
		t.Fatalf("unexpected header row: %v", rows[0])
	}
	if rows[1][4] != "Fast" {
		t.Fatalf("first data row should be the fastest runner, got %v", rows[1])
	}
}
