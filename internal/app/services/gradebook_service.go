package services

import (
	"github.com/mensah/schoolms/internal/app/models"
	"github.com/mensah/schoolms/internal/pkg/apperrors"
	"github.com/mensah/schoolms/internal/storage"
)

// StudentReport groups a student's grades for one term by course.
type StudentReport struct {
	StudentID string                     `json:"student_id"`
	Term      string                     `json:"term"`
	Courses   map[string][]*models.Grade `json:"courses"`
	Average   float64                    `json:"average"`
}

// GradebookService defines the interface for gradebook operations
type GradebookService interface {
	RecordGrade(grade *models.Grade) (*models.Grade, error)
	GetGrade(id string) (*models.Grade, error)
	UpdateGrade(id string, fields map[string]interface{}) (*models.Grade, error)
	DeleteGrade(id string) error
	StudentGrades(studentID string) ([]*models.Grade, error)
	StudentReport(studentID, term string) (*StudentReport, error)
}

// gradebookServiceImpl implements the GradebookService interface
type gradebookServiceImpl struct {
	store storage.Store
}

// NewGradebookService creates a new gradebook service instance
func NewGradebookService(store storage.Store) GradebookService {
	return &gradebookServiceImpl{store: store}
}

// RecordGrade persists a gradebook entry. The store checks that the
// referenced class, student, and course exist.
func (s *gradebookServiceImpl) RecordGrade(grade *models.Grade) (*models.Grade, error) {
	if grade == nil {
		return nil, apperrors.NewValidationError("grade", "required")
	}
	if err := s.store.Save(grade); err != nil {
		return nil, err
	}
	return grade, nil
}

// GetGrade retrieves a gradebook entry by id
func (s *gradebookServiceImpl) GetGrade(id string) (*models.Grade, error) {
	found, ok := s.store.GetByID(models.KindGrade, id)
	if !ok {
		return nil, apperrors.NewNotFoundError(string(models.KindGrade), id)
	}
	return found.(*models.Grade), nil
}

// UpdateGrade applies the given fields and persists the result
func (s *gradebookServiceImpl) UpdateGrade(id string, fields map[string]interface{}) (*models.Grade, error) {
	grade, err := s.GetGrade(id)
	if err != nil {
		return nil, err
	}

	updated, err := models.Apply(grade, fields)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(updated); err != nil {
		return nil, err
	}
	return updated.(*models.Grade), nil
}

// DeleteGrade removes a gradebook entry
func (s *gradebookServiceImpl) DeleteGrade(id string) error {
	if err := s.store.DeleteByID(models.KindGrade, id); err != nil {
		return err
	}
	return s.store.Save()
}

// StudentGrades returns every gradebook entry for a student
func (s *gradebookServiceImpl) StudentGrades(studentID string) ([]*models.Grade, error) {
	if _, ok := s.store.GetByID(models.KindStudent, studentID); !ok {
		return nil, apperrors.NewNotFoundError(string(models.KindStudent), studentID)
	}

	entities, err := s.store.Query(models.KindGrade).
		Where("student_id", studentID).
		All()
	if err != nil {
		return nil, err
	}

	grades := make([]*models.Grade, 0, len(entities))
	for _, e := range entities {
		grades = append(grades, e.(*models.Grade))
	}
	return grades, nil
}

// StudentReport groups one term's grades by course and averages the
// percentage marks.
func (s *gradebookServiceImpl) StudentReport(studentID, term string) (*StudentReport, error) {
	if _, ok := s.store.GetByID(models.KindStudent, studentID); !ok {
		return nil, apperrors.NewNotFoundError(string(models.KindStudent), studentID)
	}

	entities, err := s.store.Query(models.KindGrade).
		Where("student_id", studentID).
		Where("term", term).
		All()
	if err != nil {
		return nil, err
	}

	report := &StudentReport{
		StudentID: studentID,
		Term:      term,
		Courses:   map[string][]*models.Grade{},
	}

	var sum float64
	for _, e := range entities {
		grade := e.(*models.Grade)
		report.Courses[grade.CourseID] = append(report.Courses[grade.CourseID], grade)
		sum += grade.Percent()
	}
	if len(entities) > 0 {
		report.Average = sum / float64(len(entities))
	}
	return report, nil
}
