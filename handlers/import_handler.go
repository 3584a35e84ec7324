package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/lp-esports/sports-day-system/services"
)

type ImportHandler struct {
	importService services.ImportService
}

func NewImportHandler(is services.ImportService) *ImportHandler {
	return &ImportHandler{importService: is}
}

// BulkImportStudents accepts a multipart form with the roster CSV in the
// "csvFile" field.
func (h *ImportHandler) BulkImportStudents(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		badRequestResponse(w, r, fmt.Errorf("invalid multipart form: %w", err))
		return
	}

	file, _, err := r.FormFile("csvFile")
	if err != nil {
		mapServiceErrorToHTTP(w, r, services.ErrImportFileRequired)
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		serverErrorResponse(w, r, fmt.Errorf("failed to read CSV file: %w", err))
		return
	}

	summary, err := h.importService.ImportStudents(r.Context(), string(payload))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, summary, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
