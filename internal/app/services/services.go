// Package services implements the application's domain operations on top
// of the storage contract. Each service follows the interface plus
// unexported implementation pattern and returns apperrors sentinels the
// HTTP layer translates into status codes.
package services

import (
	"github.com/mensah/schoolms/internal/storage"
)

// Services bundles every domain service for dependency injection.
type Services struct {
	User       UserService
	Student    StudentService
	Class      ClassService
	Course     CourseService
	Gradebook  GradebookService
	Attendance AttendanceService
	Feedback   FeedbackService
}

// NewServices wires all services over one shared store.
func NewServices(store storage.Store) *Services {
	return &Services{
		User:       NewUserService(store),
		Student:    NewStudentService(store),
		Class:      NewClassService(store),
		Course:     NewCourseService(store),
		Gradebook:  NewGradebookService(store),
		Attendance: NewAttendanceService(store),
		Feedback:   NewFeedbackService(store),
	}
}
