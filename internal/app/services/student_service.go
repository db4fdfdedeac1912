package services

import (
	"github.com/mensah/schoolms/internal/app/models"
	"github.com/mensah/schoolms/internal/pkg/apperrors"
	"github.com/mensah/schoolms/internal/storage"
)

// StudentService defines the interface for student operations
type StudentService interface {
	CreateStudent(student *models.Student) (*models.Student, error)
	GetStudent(id string) (*models.Student, error)
	ListStudents() ([]*models.Student, error)
	ListChildren(parentID string) ([]*models.Student, error)
	UpdateStudent(id string, fields map[string]interface{}) (*models.Student, error)
	DeleteStudent(id string) error
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	store storage.Store
}

// NewStudentService creates a new student service instance
func NewStudentService(store storage.Store) StudentService {
	return &studentServiceImpl{store: store}
}

// CreateStudent registers a student under an existing parent and records
// the parent-student link.
func (s *studentServiceImpl) CreateStudent(student *models.Student) (*models.Student, error) {
	if student == nil {
		return nil, apperrors.NewValidationError("student", "required")
	}
	if _, ok := s.store.GetByID(models.KindParent, student.ParentID); !ok {
		return nil, apperrors.NewNotFoundError(string(models.KindParent), student.ParentID)
	}

	student.Init()
	link := &models.ParentStudentAssociation{
		ParentID:  student.ParentID,
		StudentID: student.ID,
	}
	if err := s.store.Save(student, link); err != nil {
		return nil, err
	}
	return student, nil
}

// GetStudent retrieves a student by id
func (s *studentServiceImpl) GetStudent(id string) (*models.Student, error) {
	found, ok := s.store.GetByID(models.KindStudent, id)
	if !ok {
		return nil, apperrors.NewNotFoundError(string(models.KindStudent), id)
	}
	return found.(*models.Student), nil
}

// ListStudents returns every student
func (s *studentServiceImpl) ListStudents() ([]*models.Student, error) {
	entities, err := s.store.All(models.KindStudent)
	if err != nil {
		return nil, err
	}
	return asStudents(entities), nil
}

// ListChildren returns the students linked to a parent
func (s *studentServiceImpl) ListChildren(parentID string) ([]*models.Student, error) {
	if _, ok := s.store.GetByID(models.KindParent, parentID); !ok {
		return nil, apperrors.NewNotFoundError(string(models.KindParent), parentID)
	}

	links, err := s.store.Query(models.KindParentStudentAssociation).
		Where("parent_id", parentID).
		All()
	if err != nil {
		return nil, err
	}

	students := make([]*models.Student, 0, len(links))
	for _, link := range links {
		assoc := link.(*models.ParentStudentAssociation)
		if found, ok := s.store.GetByID(models.KindStudent, assoc.StudentID); ok {
			students = append(students, found.(*models.Student))
		}
	}
	return students, nil
}

// UpdateStudent applies the given fields and persists the result
func (s *studentServiceImpl) UpdateStudent(id string, fields map[string]interface{}) (*models.Student, error) {
	student, err := s.GetStudent(id)
	if err != nil {
		return nil, err
	}

	updated, err := models.Apply(student, fields)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(updated); err != nil {
		return nil, err
	}
	return updated.(*models.Student), nil
}

// DeleteStudent removes a student together with their attendance, grades,
// and association rows.
func (s *studentServiceImpl) DeleteStudent(id string) error {
	if err := s.store.DeleteByID(models.KindStudent, id); err != nil {
		return err
	}
	return s.store.Save()
}

func asStudents(entities []models.Entity) []*models.Student {
	out := make([]*models.Student, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.(*models.Student))
	}
	return out
}
