package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lp-esports/sports-day-system/models"
	"github.com/lp-esports/sports-day-system/repositories"
)

type ClassService interface {
	CreateClass(ctx context.Context, input CreateClassInput) (*models.Class, error)
	GetClassByID(ctx context.Context, id int) (*models.Class, error)
	GetAllClasses(ctx context.Context) ([]models.Class, error)
	UpdateClass(ctx context.Context, id int, input UpdateClassInput) (*models.Class, error)
	DeleteClass(ctx context.Context, id int) error
}

type CreateClassInput struct {
	Name string `json:"name"`
}

type UpdateClassInput struct {
	Name string `json:"name"`
}

type classService struct {
	classRepo repositories.ClassRepository
}

func NewClassService(classRepo repositories.ClassRepository) ClassService {
	return &classService{classRepo: classRepo}
}

func (s *classService) CreateClass(ctx context.Context, input CreateClassInput) (*models.Class, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrClassNameRequired
	}

	class := &models.Class{Name: name}
	if err := s.classRepo.Create(ctx, nil, class); err != nil {
		if errors.Is(err, repositories.ErrClassNameConflict) {
			return nil, ErrClassNameConflict
		}
		return nil, fmt.Errorf("failed to create class: %w", err)
	}
	return class, nil
}

func (s *classService) GetClassByID(ctx context.Context, id int) (*models.Class, error) {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrClassNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, fmt.Errorf("failed to get class by id %d: %w", id, err)
	}
	return class, nil
}

func (s *classService) GetAllClasses(ctx context.Context) ([]models.Class, error) {
	classes, err := s.classRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all classes: %w", err)
	}
	return classes, nil
}

func (s *classService) UpdateClass(ctx context.Context, id int, input UpdateClassInput) (*models.Class, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrClassNameRequired
	}

	class := &models.Class{ID: id, Name: name}
	err := s.classRepo.Update(ctx, class)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrClassNotFound):
			return nil, ErrClassNotFound
		case errors.Is(err, repositories.ErrClassNameConflict):
			return nil, ErrClassNameConflict
		default:
			return nil, fmt.Errorf("failed to update class %d: %w", id, err)
		}
	}
	return class, nil
}

func (s *classService) DeleteClass(ctx context.Context, id int) error {
	err := s.classRepo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrClassNotFound):
			return ErrClassNotFound
		case errors.Is(err, repositories.ErrClassInUse):
			return ErrClassInUse
		default:
			return fmt.Errorf("failed to delete class %d: %w", id, err)
		}
	}
	return nil
}
