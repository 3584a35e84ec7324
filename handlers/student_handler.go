package handlers

import (
	"errors"
	"net/http"

	"github.com/lp-esports/sports-day-system/services"
)

type StudentHandler struct {
	studentService services.StudentService
}

func NewStudentHandler(ss services.StudentService) *StudentHandler {
	return &StudentHandler{studentService: ss}
}

func (h *StudentHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	classID, err := optionalIntQuery(r, "class_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	students, err := h.studentService.ListStudents(r.Context(), classID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, students, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StudentHandler) SearchStudent(w http.ResponseWriter, r *http.Request) {
	classID, err := optionalIntQuery(r, "class_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	studentNumber := r.URL.Query().Get("student_number")
	if classID == nil || studentNumber == "" {
		badRequestResponse(w, r, errors.New("class_id and student_number are required"))
		return
	}

	student, err := h.studentService.SearchStudent(r.Context(), *classID, studentNumber)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, student, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StudentHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var input services.StudentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	student, err := h.studentService.CreateStudent(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, student, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StudentHandler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	studentID, err := getIDFromURL(r, "studentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.StudentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	student, err := h.studentService.UpdateStudent(r.Context(), studentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, student, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StudentHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	studentID, err := getIDFromURL(r, "studentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.studentService.DeleteStudent(r.Context(), studentID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "student deleted"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
