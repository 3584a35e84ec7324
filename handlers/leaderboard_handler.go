package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/lp-esports/sports-day-system/services"
)

type LeaderboardHandler struct {
	leaderboardService services.LeaderboardService
}

func NewLeaderboardHandler(ls services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: ls}
}

func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	sportID, err := optionalIntQuery(r, "sport_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	classID, err := optionalIntQuery(r, "class_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entries, err := h.leaderboardService.List(r.Context(), sportID, classID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, entries, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LeaderboardHandler) GetShowcase(w http.ResponseWriter, r *http.Request) {
	groups, err := h.leaderboardService.Showcase(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, groups, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ExportLeaderboard streams the current leaderboard as an XLSX workbook,
// honoring the same sport_id/class_id filters as the JSON endpoint.
func (h *LeaderboardHandler) ExportLeaderboard(w http.ResponseWriter, r *http.Request) {
	sportID, err := optionalIntQuery(r, "sport_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	classID, err := optionalIntQuery(r, "class_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	workbook, err := h.leaderboardService.ExportXLSX(r.Context(), sportID, classID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("leaderboard_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := workbook.Write(w); err != nil {
		serverErrorResponse(w, r, fmt.Errorf("failed to stream workbook: %w", err))
	}
}
