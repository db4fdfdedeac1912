package services

import (
	"fmt"

	"github.com/mensah/schoolms/internal/app/models"
	"github.com/mensah/schoolms/internal/pkg/apperrors"
	"github.com/mensah/schoolms/internal/storage"
)

// ClassService defines the interface for class management operations
type ClassService interface {
	CreateClass(class *models.Class) (*models.Class, error)
	GetClass(id string) (*models.Class, error)
	ListClasses() ([]*models.Class, error)
	UpdateClass(id string, fields map[string]interface{}) (*models.Class, error)
	DeleteClass(id string) error
	EnrollStudent(classID, studentID string) error
	UnenrollStudent(classID, studentID string) error
	Students(classID string) ([]*models.Student, error)
	AssignCourse(classID, courseID, description string) error
	Courses(classID string) ([]*models.Course, error)
}

// classServiceImpl implements the ClassService interface
type classServiceImpl struct {
	store storage.Store
}

// NewClassService creates a new class service instance
func NewClassService(store storage.Store) ClassService {
	return &classServiceImpl{store: store}
}

// CreateClass creates a new class
func (s *classServiceImpl) CreateClass(class *models.Class) (*models.Class, error) {
	if class == nil {
		return nil, apperrors.NewValidationError("class", "required")
	}
	if err := s.store.Save(class); err != nil {
		return nil, err
	}
	return class, nil
}

// GetClass retrieves a class by id
func (s *classServiceImpl) GetClass(id string) (*models.Class, error) {
	found, ok := s.store.GetByID(models.KindClass, id)
	if !ok {
		return nil, apperrors.NewNotFoundError(string(models.KindClass), id)
	}
	return found.(*models.Class), nil
}

// ListClasses retrieves all classes
func (s *classServiceImpl) ListClasses() ([]*models.Class, error) {
	entities, err := s.store.All(models.KindClass)
	if err != nil {
		return nil, fmt.Errorf("error retrieving classes: %w", err)
	}

	classes := make([]*models.Class, 0, len(entities))
	for _, e := range entities {
		classes = append(classes, e.(*models.Class))
	}
	return classes, nil
}

// UpdateClass applies the given fields and persists the result
func (s *classServiceImpl) UpdateClass(id string, fields map[string]interface{}) (*models.Class, error) {
	class, err := s.GetClass(id)
	if err != nil {
		return nil, err
	}

	updated, err := models.Apply(class, fields)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(updated); err != nil {
		return nil, err
	}
	return updated.(*models.Class), nil
}

// DeleteClass removes the class; the store cascades its attendance, grade,
// and association children.
func (s *classServiceImpl) DeleteClass(id string) error {
	if err := s.store.DeleteByID(models.KindClass, id); err != nil {
		return err
	}
	return s.store.Save()
}

// EnrollStudent creates the student-class association edge. Enrolling an
// already-enrolled student is a conflict, not a duplicate edge.
func (s *classServiceImpl) EnrollStudent(classID, studentID string) error {
	if _, ok := s.store.GetByID(models.KindClass, classID); !ok {
		return apperrors.NewNotFoundError(string(models.KindClass), classID)
	}
	if _, ok := s.store.GetByID(models.KindStudent, studentID); !ok {
		return apperrors.NewNotFoundError(string(models.KindStudent), studentID)
	}

	count, err := s.store.Query(models.KindStudentClassAssociation).
		Where("class_id", classID).
		Where("student_id", studentID).
		Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: student %s already enrolled in class %s", apperrors.ErrConflict, studentID, classID)
	}

	return s.store.Save(&models.StudentClassAssociation{
		StudentID: studentID,
		ClassID:   classID,
	})
}

// UnenrollStudent removes the student-class association edge
func (s *classServiceImpl) UnenrollStudent(classID, studentID string) error {
	assoc, ok, err := s.store.Query(models.KindStudentClassAssociation).
		Where("class_id", classID).
		Where("student_id", studentID).
		First()
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewNotFoundError(string(models.KindStudentClassAssociation), studentID)
	}

	if err := s.store.Delete(assoc); err != nil {
		return err
	}
	return s.store.Save()
}

// Students returns the roster of a class
func (s *classServiceImpl) Students(classID string) ([]*models.Student, error) {
	if _, ok := s.store.GetByID(models.KindClass, classID); !ok {
		return nil, apperrors.NewNotFoundError(string(models.KindClass), classID)
	}

	assocs, err := s.store.Query(models.KindStudentClassAssociation).
		Where("class_id", classID).
		All()
	if err != nil {
		return nil, err
	}

	students := make([]*models.Student, 0, len(assocs))
	for _, e := range assocs {
		assoc := e.(*models.StudentClassAssociation)
		if found, ok := s.store.GetByID(models.KindStudent, assoc.StudentID); ok {
			students = append(students, found.(*models.Student))
		}
	}
	return students, nil
}

// AssignCourse creates the class-course association edge
func (s *classServiceImpl) AssignCourse(classID, courseID, description string) error {
	if _, ok := s.store.GetByID(models.KindClass, classID); !ok {
		return apperrors.NewNotFoundError(string(models.KindClass), classID)
	}
	if _, ok := s.store.GetByID(models.KindCourse, courseID); !ok {
		return apperrors.NewNotFoundError(string(models.KindCourse), courseID)
	}

	count, err := s.store.Query(models.KindClassCourseAssociation).
		Where("class_id", classID).
		Where("course_id", courseID).
		Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: course %s already assigned to class %s", apperrors.ErrConflict, courseID, classID)
	}

	return s.store.Save(&models.ClassCourseAssociation{
		ClassID:     classID,
		CourseID:    courseID,
		Description: description,
	})
}

// Courses returns the courses a class takes
func (s *classServiceImpl) Courses(classID string) ([]*models.Course, error) {
	if _, ok := s.store.GetByID(models.KindClass, classID); !ok {
		return nil, apperrors.NewNotFoundError(string(models.KindClass), classID)
	}

	assocs, err := s.store.Query(models.KindClassCourseAssociation).
		Where("class_id", classID).
		All()
	if err != nil {
		return nil, err
	}

	courses := make([]*models.Course, 0, len(assocs))
	for _, e := range assocs {
		assoc := e.(*models.ClassCourseAssociation)
		if found, ok := s.store.GetByID(models.KindCourse, assoc.CourseID); ok {
			courses = append(courses, found.(*models.Course))
		}
	}
	return courses, nil
}
