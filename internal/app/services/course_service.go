package services

import (
	"fmt"

	"github.com/mensah/schoolms/internal/app/models"
	"github.com/mensah/schoolms/internal/pkg/apperrors"
	"github.com/mensah/schoolms/internal/storage"
)

// CourseService defines the interface for course management operations
type CourseService interface {
	CreateCourse(course *models.Course) (*models.Course, error)
	GetCourse(id string) (*models.Course, error)
	ListCourses() ([]*models.Course, error)
	UpdateCourse(id string, fields map[string]interface{}) (*models.Course, error)
	DeleteCourse(id string) error
	Classes(courseID string) ([]*models.Class, error)
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	store storage.Store
}

// NewCourseService creates a new course service instance
func NewCourseService(store storage.Store) CourseService {
	return &courseServiceImpl{store: store}
}

// CreateCourse creates a new course
func (s *courseServiceImpl) CreateCourse(course *models.Course) (*models.Course, error) {
	if course == nil {
		return nil, apperrors.NewValidationError("course", "required")
	}
	if err := s.store.Save(course); err != nil {
		return nil, err
	}
	return course, nil
}

// GetCourse retrieves a course by id
func (s *courseServiceImpl) GetCourse(id string) (*models.Course, error) {
	found, ok := s.store.GetByID(models.KindCourse, id)
	if !ok {
		return nil, apperrors.NewNotFoundError(string(models.KindCourse), id)
	}
	return found.(*models.Course), nil
}

// ListCourses retrieves all courses
func (s *courseServiceImpl) ListCourses() ([]*models.Course, error) {
	entities, err := s.store.All(models.KindCourse)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}

	courses := make([]*models.Course, 0, len(entities))
	for _, e := range entities {
		courses = append(courses, e.(*models.Course))
	}
	return courses, nil
}

// UpdateCourse applies the given fields and persists the result
func (s *courseServiceImpl) UpdateCourse(id string, fields map[string]interface{}) (*models.Course, error) {
	course, err := s.GetCourse(id)
	if err != nil {
		return nil, err
	}

	updated, err := models.Apply(course, fields)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(updated); err != nil {
		return nil, err
	}
	return updated.(*models.Course), nil
}

// DeleteCourse removes the course and its class association edges
func (s *courseServiceImpl) DeleteCourse(id string) error {
	if _, ok := s.store.GetByID(models.KindCourse, id); !ok {
		return apperrors.NewNotFoundError(string(models.KindCourse), id)
	}

	assocs, err := s.store.Query(models.KindClassCourseAssociation).
		Where("course_id", id).
		All()
	if err != nil {
		return err
	}
	for _, assoc := range assocs {
		if err := s.store.Delete(assoc); err != nil {
			return err
		}
	}

	if err := s.store.DeleteByID(models.KindCourse, id); err != nil {
		return err
	}
	return s.store.Save()
}

// Classes returns the classes taking a course
func (s *courseServiceImpl) Classes(courseID string) ([]*models.Class, error) {
	if _, ok := s.store.GetByID(models.KindCourse, courseID); !ok {
		return nil, apperrors.NewNotFoundError(string(models.KindCourse), courseID)
	}

	assocs, err := s.store.Query(models.KindClassCourseAssociation).
		Where("course_id", courseID).
		All()
	if err != nil {
		return nil, err
	}

	classes := make([]*models.Class, 0, len(assocs))
	for _, e := range assocs {
		assoc := e.(*models.ClassCourseAssociation)
		if found, ok := s.store.GetByID(models.KindClass, assoc.ClassID); ok {
			classes = append(classes, found.(*models.Class))
		}
	}
	return classes, nil
}
