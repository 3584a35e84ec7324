package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/lp-esports/sports-day-system/services"
)

const maxUploadSize = 32 << 20 // 32MB

type ResultHandler struct {
	resultService services.ResultService
}

func NewResultHandler(rs services.ResultService) *ResultHandler {
	return &ResultHandler{resultService: rs}
}

// SubmitResult handles the public score submission form. A brand-new
// (student, sport) pair returns 201 with the created record; a repeat
// submission returns 200 reporting whether the stored time was replaced.
func (h *ResultHandler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		badRequestResponse(w, r, fmt.Errorf("invalid multipart form: %w", err))
		return
	}

	input := services.SubmitResultInput{}
	var err error
	if input.StudentID, err = formInt(r, "student_id"); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.SportID, err = formInt(r, "sport_id"); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.TimeMin, err = formInt(r, "time_min"); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.TimeSec, err = formInt(r, "time_sec"); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	file, header, err := r.FormFile("photo")
	switch {
	case err == nil:
		defer file.Close()
		input.Photo = file
		input.PhotoContentType = header.Header.Get("Content-Type")
	case errors.Is(err, http.ErrMissingFile):
		// photo is optional
	default:
		badRequestResponse(w, r, fmt.Errorf("failed to read photo: %w", err))
		return
	}

	outcome, err := h.resultService.Submit(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if outcome.Created {
		if err := writeJSON(w, http.StatusCreated, outcome.Result, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
		return
	}

	message := "existing result is faster, submission discarded"
	if outcome.Updated {
		message = "result updated with faster time"
	}
	response := jsonResponse{"message": message, "updated": outcome.Updated}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateResult is the admin correction path: the submitted time always
// overwrites the stored one, no best-time comparison.
func (h *ResultHandler) UpdateResult(w http.ResponseWriter, r *http.Request) {
	resultID, err := getIDFromURL(r, "resultID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		badRequestResponse(w, r, fmt.Errorf("invalid multipart form: %w", err))
		return
	}

	input := services.UpdateResultInput{}
	if input.TimeMin, err = formInt(r, "time_min"); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.TimeSec, err = formInt(r, "time_sec"); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	file, header, err := r.FormFile("photo")
	switch {
	case err == nil:
		defer file.Close()
		input.Photo = file
		input.PhotoContentType = header.Header.Get("Content-Type")
	case errors.Is(err, http.ErrMissingFile):
	default:
		badRequestResponse(w, r, fmt.Errorf("failed to read photo: %w", err))
		return
	}

	result, err := h.resultService.Update(r.Context(), resultID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ResultHandler) DeleteResult(w http.ResponseWriter, r *http.Request) {
	resultID, err := getIDFromURL(r, "resultID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.resultService.Delete(r.Context(), resultID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "result deleted"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func formInt(r *http.Request, field string) (int, error) {
	raw := r.FormValue(field)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", field)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", field, raw)
	}
	return v, nil
}
