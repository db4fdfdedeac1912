// Package controllers contains the HTTP handlers. Controllers stay thin:
// they bind request DTOs, delegate to the services, and shape responses.
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mensah/schoolms/internal/app/models"
	"github.com/mensah/schoolms/internal/app/models/dto"
	"github.com/mensah/schoolms/internal/app/services"
	"github.com/mensah/schoolms/internal/pkg/auth"
)

// Controllers bundles every HTTP controller for route registration.
type Controllers struct {
	Auth       *AuthController
	User       *UserController
	Student    *StudentController
	Class      *ClassController
	Course     *CourseController
	Gradebook  *GradebookController
	Attendance *AttendanceController
	Feedback   *FeedbackController
}

// NewControllers wires all controllers over the service container.
func NewControllers(svcs *services.Services, jwtService *auth.JWTService) *Controllers {
	return &Controllers{
		Auth:       NewAuthController(svcs.User, jwtService),
		User:       NewUserController(svcs.User),
		Student:    NewStudentController(svcs.Student),
		Class:      NewClassController(svcs.Class),
		Course:     NewCourseController(svcs.Course),
		Gradebook:  NewGradebookController(svcs.Gradebook),
		Attendance: NewAttendanceController(svcs.Attendance),
		Feedback:   NewFeedbackController(svcs.Feedback),
	}
}

func bindError(ctx *gin.Context, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}

// parseDate converts an optional request date into a timestamp. An empty
// input yields the zero timestamp.
func parseDate(ctx *gin.Context, field, value string) (models.Timestamp, bool) {
	if value == "" {
		return models.Timestamp{}, true
	}
	ts, err := models.ParseTimestamp(value)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid date format").WithField(field)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return models.Timestamp{}, false
	}
	return ts, true
}
