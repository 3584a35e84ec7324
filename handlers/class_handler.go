package handlers

import (
	"net/http"

	"github.com/lp-esports/sports-day-system/services"
)

type ClassHandler struct {
	classService services.ClassService
}

func NewClassHandler(cs services.ClassService) *ClassHandler {
	return &ClassHandler{classService: cs}
}

func (h *ClassHandler) GetAllClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.classService.GetAllClasses(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, classes, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ClassHandler) CreateClass(w http.ResponseWriter, r *http.Request) {
	var input services.CreateClassInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	class, err := h.classService.CreateClass(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, class, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ClassHandler) UpdateClass(w http.ResponseWriter, r *http.Request) {
	classID, err := getIDFromURL(r, "classID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateClassInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	class, err := h.classService.UpdateClass(r.Context(), classID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, class, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ClassHandler) DeleteClass(w http.ResponseWriter, r *http.Request) {
	classID, err := getIDFromURL(r, "classID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.classService.DeleteClass(r.Context(), classID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "class deleted"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
