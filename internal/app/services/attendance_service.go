package services

import (
	"github.com/mensah/schoolms/internal/app/models"
	"github.com/mensah/schoolms/internal/pkg/apperrors"
	"github.com/mensah/schoolms/internal/storage"
)

// AttendanceSummary aggregates a student's attendance for one term.
type AttendanceSummary struct {
	StudentID    string  `json:"student_id"`
	Term         string  `json:"term"`
	Present      int     `json:"present"`
	Absent       int     `json:"absent"`
	PresenceRate float64 `json:"presence_rate"`
}

// AttendanceService defines the interface for attendance operations
type AttendanceService interface {
	Mark(record *models.Attendance) (*models.Attendance, error)
	Get(id string) (*models.Attendance, error)
	Update(id string, fields map[string]interface{}) (*models.Attendance, error)
	Delete(id string) error
	ForStudent(studentID string) ([]*models.Attendance, error)
	ForClass(classID, date string) ([]*models.Attendance, error)
	Summary(studentID, term string) (*AttendanceSummary, error)
}

// attendanceServiceImpl implements the AttendanceService interface
type attendanceServiceImpl struct {
	store storage.Store
}

// NewAttendanceService creates a new attendance service instance
func NewAttendanceService(store storage.Store) AttendanceService {
	return &attendanceServiceImpl{store: store}
}

// Mark persists an attendance record. The store checks that the
// referenced class and student exist.
func (s *attendanceServiceImpl) Mark(record *models.Attendance) (*models.Attendance, error) {
	if record == nil {
		return nil, apperrors.NewValidationError("attendance", "required")
	}
	if err := s.store.Save(record); err != nil {
		return nil, err
	}
	return record, nil
}

// Get retrieves an attendance record by id
func (s *attendanceServiceImpl) Get(id string) (*models.Attendance, error) {
	found, ok := s.store.GetByID(models.KindAttendance, id)
	if !ok {
		return nil, apperrors.NewNotFoundError(string(models.KindAttendance), id)
	}
	return found.(*models.Attendance), nil
}

// Update applies the given fields and persists the result
func (s *attendanceServiceImpl) Update(id string, fields map[string]interface{}) (*models.Attendance, error) {
	record, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updated, err := models.Apply(record, fields)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(updated); err != nil {
		return nil, err
	}
	return updated.(*models.Attendance), nil
}

// Delete removes an attendance record
func (s *attendanceServiceImpl) Delete(id string) error {
	if err := s.store.DeleteByID(models.KindAttendance, id); err != nil {
		return err
	}
	return s.store.Save()
}

// ForStudent returns every attendance record for a student
func (s *attendanceServiceImpl) ForStudent(studentID string) ([]*models.Attendance, error) {
	if _, ok := s.store.GetByID(models.KindStudent, studentID); !ok {
		return nil, apperrors.NewNotFoundError(string(models.KindStudent), studentID)
	}
	return s.collect(s.store.Query(models.KindAttendance).Where("student_id", studentID))
}

// ForClass returns a class register. An empty date returns every
// record for the class.
func (s *attendanceServiceImpl) ForClass(classID, date string) ([]*models.Attendance, error) {
	if _, ok := s.store.GetByID(models.KindClass, classID); !ok {
		return nil, apperrors.NewNotFoundError(string(models.KindClass), classID)
	}

	query := s.store.Query(models.KindAttendance).Where("class_id", classID)
	if date != "" {
		query = query.Where("date", date)
	}
	return s.collect(query)
}

// Summary counts present and absent days for a student's term and
// computes the presence rate.
func (s *attendanceServiceImpl) Summary(studentID, term string) (*AttendanceSummary, error) {
	records, err := s.ForStudent(studentID)
	if err != nil {
		return nil, err
	}

	summary := &AttendanceSummary{StudentID: studentID, Term: term}
	for _, record := range records {
		if record.Term != term {
			continue
		}
		if record.Present() {
			summary.Present++
		} else {
			summary.Absent++
		}
	}
	if total := summary.Present + summary.Absent; total > 0 {
		summary.PresenceRate = float64(summary.Present) / float64(total)
	}
	return summary, nil
}

func (s *attendanceServiceImpl) collect(query storage.Query) ([]*models.Attendance, error) {
	entities, err := query.All()
	if err != nil {
		return nil, err
	}
	records := make([]*models.Attendance, 0, len(entities))
	for _, e := range entities {
		records = append(records, e.(*models.Attendance))
	}
	return records, nil
}
