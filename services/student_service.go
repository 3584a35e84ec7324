package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lp-esports/sports-day-system/models"
	"github.com/lp-esports/sports-day-system/repositories"
)

type StudentService interface {
	CreateStudent(ctx context.Context, input StudentInput) (*models.Student, error)
	GetStudentByID(ctx context.Context, id int) (*models.Student, error)
	ListStudents(ctx context.Context, classID *int) ([]models.Student, error)
	SearchStudent(ctx context.Context, classID int, studentNumber string) (*models.Student, error)
	UpdateStudent(ctx context.Context, id int, input StudentInput) (*models.Student, error)
	DeleteStudent(ctx context.Context, id int) error
}

type StudentInput struct {
	ClassID       int    `json:"class_id"`
	StudentNumber string `json:"student_number"`
	NameZH        string `json:"name_zh"`
	NameEN        string `json:"name_en"`
}

func (in StudentInput) validate() error {
	if in.ClassID <= 0 ||
		strings.TrimSpace(in.StudentNumber) == "" ||
		strings.TrimSpace(in.NameZH) == "" ||
		strings.TrimSpace(in.NameEN) == "" {
		return ErrStudentFieldsRequired
	}
	return nil
}

type studentService struct {
	studentRepo repositories.StudentRepository
}

func NewStudentService(studentRepo repositories.StudentRepository) StudentService {
	return &studentService{studentRepo: studentRepo}
}

func (s *studentService) CreateStudent(ctx context.Context, input StudentInput) (*models.Student, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	student := &models.Student{
		ClassID:       input.ClassID,
		StudentNumber: strings.TrimSpace(input.StudentNumber),
		NameZH:        strings.TrimSpace(input.NameZH),
		NameEN:        strings.TrimSpace(input.NameEN),
	}
	if err := s.studentRepo.Create(ctx, nil, student); err != nil {
		if errors.Is(err, repositories.ErrStudentClassInvalid) {
			return nil, ErrClassNotFound
		}
		return nil, fmt.Errorf("failed to create student: %w", err)
	}
	return student, nil
}

func (s *studentService) GetStudentByID(ctx context.Context, id int) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student by id %d: %w", id, err)
	}
	return student, nil
}

func (s *studentService) ListStudents(ctx context.Context, classID *int) ([]models.Student, error) {
	students, err := s.studentRepo.List(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

func (s *studentService) SearchStudent(ctx context.Context, classID int, studentNumber string) (*models.Student, error) {
	student, err := s.studentRepo.FindByClassAndNumber(ctx, classID, studentNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to search student: %w", err)
	}
	return student, nil
}

func (s *studentService) UpdateStudent(ctx context.Context, id int, input StudentInput) (*models.Student, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	student := &models.Student{
		ID:            id,
		ClassID:       input.ClassID,
		StudentNumber: strings.TrimSpace(input.StudentNumber),
		NameZH:        strings.TrimSpace(input.NameZH),
		NameEN:        strings.TrimSpace(input.NameEN),
	}
	err := s.studentRepo.Update(ctx, student)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrStudentNotFound):
			return nil, ErrStudentNotFound
		case errors.Is(err, repositories.ErrStudentClassInvalid):
			return nil, ErrClassNotFound
		default:
			return nil, fmt.Errorf("failed to update student %d: %w", id, err)
		}
	}
	return student, nil
}

func (s *studentService) DeleteStudent(ctx context.Context, id int) error {
	err := s.studentRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return ErrStudentNotFound
		}
		return fmt.Errorf("failed to delete student %d: %w", id, err)
	}
	return nil
}
