package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/lp-esports/sports-day-system/models"
	"github.com/lp-esports/sports-day-system/repositories"
	"github.com/lp-esports/sports-day-system/storage"
	"github.com/lp-esports/sports-day-system/testutil"
)

// memUploader is an in-memory FileUploader for tests.
type memUploader struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemUploader() *memUploader {
	return &memUploader{files: make(map[string][]byte)}
}

func (u *memUploader) Upload(_ context.Context, key, _ string, reader io.Reader) (*storage.UploadResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.files[key] = data
	return &storage.UploadResult{Key: key, Location: "mem://" + key}, nil
}

func (u *memUploader) Delete(_ context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.files, key)
	return nil
}

func (u *memUploader) GetPublicURL(key string) string {
	return "mem://" + key
}

func (u *memUploader) count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.files)
}

type recordingNotifier struct {
	mu     sync.Mutex
	sports []int
}

func (n *recordingNotifier) NotifyResultsUpdated(sportID int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sports = append(n.sports, sportID)
}

type resultFixture struct {
	conn      *sql.DB
	service   ResultService
	uploader  *memUploader
	notifier  *recordingNotifier
	studentID int
	sportID   int
}

func newResultFixture(t *testing.T) *resultFixture {
	t.Helper()
	conn, dialect := testutil.NewTestDB(t)
	ctx := context.Background()

	classRepo := repositories.NewSQLClassRepository(conn, dialect)
	studentRepo := repositories.NewSQLStudentRepository(conn, dialect)
	sportRepo := repositories.NewSQLSportRepository(conn, dialect)
	resultRepo := repositories.NewSQLResultRepository(conn, dialect)

	class := &models.Class{Name: "3A"}
	if err := classRepo.Create(ctx, nil, class); err != nil {
		t.Fatalf("failed to create class: %v", err)
	}
	student := &models.Student{ClassID: class.ID, StudentNumber: "12", NameZH: "王小明", NameEN: "Ming Wang"}
	if err := studentRepo.Create(ctx, nil, student); err != nil {
		t.Fatalf("failed to create student: %v", err)
	}
	sport := &models.Sport{Name: "100m Sprint"}
	if err := sportRepo.Create(ctx, sport); err != nil {
		t.Fatalf("failed to create sport: %v", err)
	}

	uploader := newMemUploader()
	notifier := &recordingNotifier{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewResultService(conn, resultRepo, uploader, notifier, logger)

	return &resultFixture{
		conn:      conn,
		service:   service,
		uploader:  uploader,
		notifier:  notifier,
		studentID: student.ID,
		sportID:   sport.ID,
	}
}

func (f *resultFixture) submit(t *testing.T, min, sec int) *SubmitResultOutcome {
	t.Helper()
	outcome, err := f.service.Submit(context.Background(), SubmitResultInput{
		StudentID: f.studentID,
		SportID:   f.sportID,
		TimeMin:   min,
		TimeSec:   sec,
	})
	if err != nil {
		t.Fatalf("submit %d:%02d failed: %v", min, sec, err)
	}
	return outcome
}

func TestSubmitResult_FirstSubmissionCreates(t *testing.T) {
	f := newResultFixture(t)

	outcome := f.submit(t, 1, 30)
	if !outcome.Created {
		t.Fatal("expected first submission to create a result")
	}
	if outcome.Result == nil || outcome.Result.ID == 0 {
		t.Fatalf("expected a persisted result, got %#v", outcome.Result)
	}
	if outcome.Result.TimeMin != 1 || outcome.Result.TimeSec != 30 {
		t.Fatalf("stored time mismatch: %d:%02d", outcome.Result.TimeMin, outcome.Result.TimeSec)
	}
}

func TestSubmitResult_SlowerSubmissionDiscarded(t *testing.T) {
	f := newResultFixture(t)

	first := f.submit(t, 1, 30)
	outcome := f.submit(t, 1, 45)

	if outcome.Created || outcome.Updated {
		t.Fatalf("slower time must be discarded, got created=%v updated=%v", outcome.Created, outcome.Updated)
	}
	if outcome.Result.ID != first.Result.ID {
		t.Fatalf("expected the existing result back, got id %d", outcome.Result.ID)
	}
	if outcome.Result.TimeSec != 30 {
		t.Fatalf("stored time must be unchanged, got %d:%02d", outcome.Result.TimeMin, outcome.Result.TimeSec)
	}
}

func TestSubmitResult_EqualTimeKeepsExisting(t *testing.T) {
	f := newResultFixture(t)

	f.submit(t, 1, 30)
	outcome := f.submit(t, 1, 30)
	if outcome.Created || outcome.Updated {
		t.Fatal("equal time must not replace the stored result")
	}
}

func TestSubmitResult_FasterSubmissionReplaces(t *testing.T) {
	f := newResultFixture(t)

	f.submit(t, 1, 30)
	outcome := f.submit(t, 1, 15)

	if !outcome.Updated {
		t.Fatal("faster time must replace the stored result")
	}
	if outcome.Result.TimeMin != 1 || outcome.Result.TimeSec != 15 {
		t.Fatalf("stored time mismatch after replace: %d:%02d", outcome.Result.TimeMin, outcome.Result.TimeSec)
	}
}

func TestSubmitResult_MinuteCarryComparison(t *testing.T) {
	f := newResultFixture(t)

	// 0:90 (90s) beats 1:45 (105s) even though its seconds field is larger.
	f.submit(t, 1, 45)
	outcome := f.submit(t, 0, 90)
	if !outcome.Updated {
		t.Fatal("expected 0:90 to beat 1:45 on total seconds")
	}
}

func TestSubmitResult_ValidatesInput(t *testing.T) {
	f := newResultFixture(t)

	cases := []struct {
		name  string
		input SubmitResultInput
		want  error
	}{
		{"missing student", SubmitResultInput{SportID: f.sportID, TimeSec: 10}, ErrResultFieldsRequired},
		{"missing sport", SubmitResultInput{StudentID: f.studentID, TimeSec: 10}, ErrResultFieldsRequired},
		{"negative seconds", SubmitResultInput{StudentID: f.studentID, SportID: f.sportID, TimeSec: -1}, ErrResultTimeInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.Submit(context.Background(), tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestSubmitResult_UnknownStudentRejected(t *testing.T) {
	f := newResultFixture(t)

	_, err := f.service.Submit(context.Background(), SubmitResultInput{
		StudentID: 9999,
		SportID:   f.sportID,
		TimeMin:   1,
		TimeSec:   0,
	})
	if !errors.Is(err, ErrResultReferenceInvalid) {
		t.Fatalf("expected ErrResultReferenceInvalid, got %v", err)
	}
}

func TestSubmitResult_PhotoStoredAndDiscardedOnLoss(t *testing.T) {
	f := newResultFixture(t)

	outcome, err := f.service.Submit(context.Background(), SubmitResultInput{
		StudentID:        f.studentID,
		SportID:          f.sportID,
		TimeMin:          1,
		TimeSec:          30,
		Photo:            strings.NewReader("jpeg-bytes"),
		PhotoContentType: "image/jpeg",
	})
	if err != nil {
		t.Fatalf("submit with photo failed: %v", err)
	}
	if outcome.Result.PhotoURL == nil {
		t.Fatal("expected a photo URL on the created result")
	}
	if f.uploader.count() != 1 {
		t.Fatalf("expected 1 stored photo, got %d", f.uploader.count())
	}

	// A slower submission's photo must not survive.
	_, err = f.service.Submit(context.Background(), SubmitResultInput{
		StudentID:        f.studentID,
		SportID:          f.sportID,
		TimeMin:          2,
		TimeSec:          0,
		Photo:            strings.NewReader("loser-bytes"),
		PhotoContentType: "image/jpeg",
	})
	if err != nil {
		t.Fatalf("slower submit failed: %v", err)
	}
	if f.uploader.count() != 1 {
		t.Fatalf("losing photo must be deleted, have %d stored", f.uploader.count())
	}
}

func TestSubmitResult_ReplacementDeletesOldPhoto(t *testing.T) {
	f := newResultFixture(t)

	if _, err := f.service.Submit(context.Background(), SubmitResultInput{
		StudentID:        f.studentID,
		SportID:          f.sportID,
		TimeMin:          1,
		TimeSec:          30,
		Photo:            strings.NewReader("old"),
		PhotoContentType: "image/png",
	}); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	if _, err := f.service.Submit(context.Background(), SubmitResultInput{
		StudentID:        f.studentID,
		SportID:          f.sportID,
		TimeMin:          1,
		TimeSec:          10,
		Photo:            strings.NewReader("new"),
		PhotoContentType: "image/png",
	}); err != nil {
		t.Fatalf("faster submit failed: %v", err)
	}

	if f.uploader.count() != 1 {
		t.Fatalf("replaced photo must be deleted, have %d stored", f.uploader.count())
	}
}

func TestSubmitResult_NotifiesSport(t *testing.T) {
	f := newResultFixture(t)

	f.submit(t, 1, 30)
	f.notifier.mu.Lock()
	defer f.notifier.mu.Unlock()
	if len(f.notifier.sports) != 1 || f.notifier.sports[0] != f.sportID {
		t.Fatalf("expected one notification for sport %d, got %v", f.sportID, f.notifier.sports)
	}
}

func TestUpdateResult_UnconditionalOverwrite(t *testing.T) {
	f := newResultFixture(t)

	created := f.submit(t, 1, 30)

	// Admin correction may make the time slower.
	updated, err := f.service.Update(context.Background(), created.Result.ID, UpdateResultInput{
		TimeMin: 2,
		TimeSec: 5,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.TimeMin != 2 || updated.TimeSec != 5 {
		t.Fatalf("admin update must overwrite unconditionally, got %d:%02d", updated.TimeMin, updated.TimeSec)
	}
}

func TestUpdateResult_NotFound(t *testing.T) {
	f := newResultFixture(t)

	_, err := f.service.Update(context.Background(), 404, UpdateResultInput{TimeMin: 1, TimeSec: 0})
	if !errors.Is(err, ErrResultNotFound) {
		t.Fatalf("expected ErrResultNotFound, got %v", err)
	}
}

func TestDeleteResult_RemovesRowAndPhoto(t *testing.T) {
	f := newResultFixture(t)

	outcome, err := f.service.Submit(context.Background(), SubmitResultInput{
		StudentID:        f.studentID,
		SportID:          f.sportID,
		TimeMin:          1,
		TimeSec:          30,
		Photo:            strings.NewReader("pic"),
		PhotoContentType: "image/jpeg",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if err := f.service.Delete(context.Background(), outcome.Result.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if f.uploader.count() != 0 {
		t.Fatalf("photo must be deleted with the result, have %d stored", f.uploader.count())
	}
	if err := f.service.Delete(context.Background(), outcome.Result.ID); !errors.Is(err, ErrResultNotFound) {
		t.Fatalf("second delete should report not found, got %v", err)
	}
}
