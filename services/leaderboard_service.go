package services

import (
	"context"
	"fmt"

	"github.com/lp-esports/sports-day-system/models"
	"github.com/lp-esports/sports-day-system/repositories"
	"github.com/lp-esports/sports-day-system/storage"
	"github.com/xuri/excelize/v2"
)

type LeaderboardService interface {
	// List returns the joined result rows, fastest first. Filters are
	// optional and conjunctive.
	List(ctx context.Context, sportID, classID *int) ([]models.LeaderboardEntry, error)
	// Showcase partitions the unfiltered leaderboard by sport, preserving
	// the per-sport time ordering, for the cycling display.
	Showcase(ctx context.Context) ([]models.ShowcaseGroup, error)
	// ExportXLSX renders the (optionally filtered) leaderboard as a
	// spreadsheet for handing out printed standings.
	ExportXLSX(ctx context.Context, sportID, classID *int) (*excelize.File, error)
}

type leaderboardService struct {
	leaderboardRepo repositories.LeaderboardRepository
	uploader        storage.FileUploader
}

func NewLeaderboardService(leaderboardRepo repositories.LeaderboardRepository, uploader storage.FileUploader) LeaderboardService {
	return &leaderboardService{
		leaderboardRepo: leaderboardRepo,
		uploader:        uploader,
	}
}

func (s *leaderboardService) List(ctx context.Context, sportID, classID *int) ([]models.LeaderboardEntry, error) {
	entries, err := s.leaderboardRepo.List(ctx, sportID, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	for i := range entries {
		populateEntryPhotoURL(&entries[i], s.uploader)
	}
	return entries, nil
}

func (s *leaderboardService) Showcase(ctx context.Context) ([]models.ShowcaseGroup, error) {
	entries, err := s.leaderboardRepo.ListBySportOrder(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query showcase results: %w", err)
	}

	groups := make([]models.ShowcaseGroup, 0)
	indexBySport := make(map[int]int)
	for i := range entries {
		populateEntryPhotoURL(&entries[i], s.uploader)

		idx, ok := indexBySport[entries[i].SportID]
		if !ok {
			groups = append(groups, models.ShowcaseGroup{
				SportID:   entries[i].SportID,
				SportName: entries[i].SportName,
				Results:   make([]models.LeaderboardEntry, 0, 8),
			})
			idx = len(groups) - 1
			indexBySport[entries[i].SportID] = idx
		}
		groups[idx].Results = append(groups[idx].Results, entries[i])
	}
	return groups, nil
}

var exportHeaders = []string{"Rank", "Class", "Student No.", "Name (中文)", "Name (English)", "Sport", "Time"}

func (s *leaderboardService) ExportXLSX(ctx context.Context, sportID, classID *int) (*excelize.File, error) {
	entries, err := s.leaderboardRepo.List(ctx, sportID, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard for export: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Leaderboard"
	f.SetSheetName("Sheet1", sheet)

	for i, h := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	for i, e := range entries {
		row := i + 2
		values := []interface{}{
			i + 1,
			e.ClassName,
			e.StudentNumber,
			e.NameZH,
			e.NameEN,
			e.SportName,
			formatTime(e.TimeMin, e.TimeSec),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell for row %d: %w", row, err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write cell for row %d: %w", row, err)
			}
		}
	}

	return f, nil
}
