package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lp-esports/sports-day-system/models"
	"github.com/lp-esports/sports-day-system/repositories"
	"github.com/lp-esports/sports-day-system/storage"
)

// ResultNotifier receives a signal whenever the stored results for a sport
// change, so display surfaces can refresh without polling.
type ResultNotifier interface {
	NotifyResultsUpdated(sportID int)
}

type ResultService interface {
	// Submit records a time for a (student, sport) pair. A first submission
	// creates the row; a repeat submission only replaces it when strictly
	// faster, otherwise it is discarded.
	Submit(ctx context.Context, input SubmitResultInput) (*SubmitResultOutcome, error)
	// Update is the admin correction path: unconditional time overwrite.
	Update(ctx context.Context, id int, input UpdateResultInput) (*models.Result, error)
	Delete(ctx context.Context, id int) error
}

type SubmitResultInput struct {
	StudentID int
	SportID   int
	TimeMin   int
	TimeSec   int

	// Photo is optional; when nil no file is stored.
	Photo            io.Reader
	PhotoContentType string
}

type UpdateResultInput struct {
	TimeMin int
	TimeSec int

	Photo            io.Reader
	PhotoContentType string
}

type SubmitResultOutcome struct {
	Result  *models.Result
	Created bool
	Updated bool
}

type resultService struct {
	db         *sql.DB
	resultRepo repositories.ResultRepository
	uploader   storage.FileUploader
	notifier   ResultNotifier
	logger     *slog.Logger
}

func NewResultService(
	conn *sql.DB,
	resultRepo repositories.ResultRepository,
	uploader storage.FileUploader,
	notifier ResultNotifier,
	logger *slog.Logger,
) ResultService {
	return &resultService{
		db:         conn,
		resultRepo: resultRepo,
		uploader:   uploader,
		notifier:   notifier,
		logger:     logger,
	}
}

func (s *resultService) Submit(ctx context.Context, input SubmitResultInput) (*SubmitResultOutcome, error) {
	if input.StudentID <= 0 || input.SportID <= 0 {
		return nil, ErrResultFieldsRequired
	}
	if input.TimeMin < 0 || input.TimeSec < 0 {
		return nil, ErrResultTimeInvalid
	}

	photoKey, err := s.storePhoto(ctx, input.Photo, input.PhotoContentType)
	if err != nil {
		return nil, err
	}

	outcome, err := s.submitTx(ctx, input, photoKey)
	if err != nil {
		// The DB write failed or lost the tie-break; the uploaded photo
		// must not be left orphaned.
		s.discardPhoto(ctx, photoKey)
		return nil, err
	}

	if !outcome.Created && !outcome.Updated {
		s.discardPhoto(ctx, photoKey)
	}
	if outcome.replacedKey != nil {
		s.discardPhoto(ctx, outcome.replacedKey)
	}
	if (outcome.Created || outcome.Updated) && s.notifier != nil {
		s.notifier.NotifyResultsUpdated(input.SportID)
	}

	populateResultPhotoURL(outcome.Result, s.uploader)
	return &outcome.SubmitResultOutcome, nil
}

type submitTxOutcome struct {
	SubmitResultOutcome
	replacedKey *string
}

func (s *resultService) submitTx(ctx context.Context, input SubmitResultInput, photoKey *string) (*submitTxOutcome, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := s.resultRepo.GetByStudentAndSport(ctx, tx, input.StudentID, input.SportID, true)
	if err != nil && !errors.Is(err, repositories.ErrResultNotFound) {
		return nil, fmt.Errorf("failed to look up existing result: %w", err)
	}

	if existing == nil {
		result := &models.Result{
			StudentID: input.StudentID,
			SportID:   input.SportID,
			TimeMin:   input.TimeMin,
			TimeSec:   input.TimeSec,
			PhotoKey:  photoKey,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.resultRepo.Create(ctx, tx, result); err != nil {
			switch {
			case errors.Is(err, repositories.ErrResultConflict):
				return nil, ErrResultConflict
			case errors.Is(err, repositories.ErrResultReferenceInvalid):
				return nil, ErrResultReferenceInvalid
			default:
				return nil, fmt.Errorf("failed to insert result: %w", err)
			}
		}
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit result insert: %w", err)
		}
		return &submitTxOutcome{SubmitResultOutcome: SubmitResultOutcome{Result: result, Created: true}}, nil
	}

	newTotal := input.TimeMin*60 + input.TimeSec
	if newTotal >= existing.TotalSeconds() {
		// The stored time is at least as fast; discard the submission.
		return &submitTxOutcome{SubmitResultOutcome: SubmitResultOutcome{Result: existing}}, nil
	}

	var replacedKey *string
	updated := &models.Result{
		ID:        existing.ID,
		StudentID: existing.StudentID,
		SportID:   existing.SportID,
		TimeMin:   input.TimeMin,
		TimeSec:   input.TimeSec,
		PhotoKey:  existing.PhotoKey,
		CreatedAt: time.Now().UTC(),
	}
	if photoKey != nil {
		replacedKey = existing.PhotoKey
		updated.PhotoKey = photoKey
	}
	if err := s.resultRepo.ReplaceTime(ctx, tx, updated); err != nil {
		return nil, fmt.Errorf("failed to update result %d: %w", existing.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit result update: %w", err)
	}
	return &submitTxOutcome{
		SubmitResultOutcome: SubmitResultOutcome{Result: updated, Updated: true},
		replacedKey:         replacedKey,
	}, nil
}

func (s *resultService) Update(ctx context.Context, id int, input UpdateResultInput) (*models.Result, error) {
	if input.TimeMin < 0 || input.TimeSec < 0 {
		return nil, ErrResultTimeInvalid
	}

	existing, err := s.resultRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrResultNotFound) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get result %d: %w", id, err)
	}

	photoKey, err := s.storePhoto(ctx, input.Photo, input.PhotoContentType)
	if err != nil {
		return nil, err
	}

	if err := s.resultRepo.UpdateByID(ctx, id, input.TimeMin, input.TimeSec, photoKey); err != nil {
		s.discardPhoto(ctx, photoKey)
		if errors.Is(err, repositories.ErrResultNotFound) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to update result %d: %w", id, err)
	}
	if photoKey != nil {
		s.discardPhoto(ctx, existing.PhotoKey)
	}

	updated, err := s.resultRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload result %d: %w", id, err)
	}
	if s.notifier != nil {
		s.notifier.NotifyResultsUpdated(updated.SportID)
	}

	populateResultPhotoURL(updated, s.uploader)
	return updated, nil
}

func (s *resultService) Delete(ctx context.Context, id int) error {
	existing, err := s.resultRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrResultNotFound) {
			return ErrResultNotFound
		}
		return fmt.Errorf("failed to get result %d: %w", id, err)
	}

	if err := s.resultRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrResultNotFound) {
			return ErrResultNotFound
		}
		return fmt.Errorf("failed to delete result %d: %w", id, err)
	}

	s.discardPhoto(ctx, existing.PhotoKey)
	if s.notifier != nil {
		s.notifier.NotifyResultsUpdated(existing.SportID)
	}
	return nil
}

func (s *resultService) storePhoto(ctx context.Context, photo io.Reader, contentType string) (*string, error) {
	if photo == nil {
		return nil, nil
	}
	ext, err := extensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("unsupported photo type: %w", err)
	}

	key := "results/" + uuid.NewString() + ext
	if _, err := s.uploader.Upload(ctx, key, contentType, photo); err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}
	return &key, nil
}

// discardPhoto removes an object that lost its referencing row (or never
// gained one). Failures are logged, never surfaced.
func (s *resultService) discardPhoto(ctx context.Context, key *string) {
	if key == nil || *key == "" {
		return
	}
	if err := s.uploader.Delete(ctx, *key); err != nil && s.logger != nil {
		s.logger.Warn("failed to delete photo", slog.String("key", *key), slog.Any("error", err))
	}
}
