package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mensah/schoolms/internal/app/models"
	"github.com/mensah/schoolms/internal/app/models/dto"
	"github.com/mensah/schoolms/internal/app/services"
	"github.com/mensah/schoolms/internal/middleware"
)

// StudentController handles student admission and records
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// CreateStudent admits a student under a parent
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	dob, ok := parseDate(ctx, "dob", req.DOB)
	if !ok {
		return
	}
	graduation, ok := parseDate(ctx, "expected_graduation", req.ExpectedGraduation)
	if !ok {
		return
	}
	admission, ok := parseDate(ctx, "admission_date", req.AdmissionDate)
	if !ok {
		return
	}

	student := &models.Student{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		OtherNames:         req.OtherNames,
		Gender:             models.Gender(req.Gender),
		ParentID:           req.ParentID,
		DOB:                dob,
		ExpectedGraduation: graduation,
		AdmissionDate:      admission,
	}

	created, err := c.studentService.CreateStudent(student)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(created, "Student admitted"))
}

// ListStudents returns every student
func (c *StudentController) ListStudents(ctx *gin.Context) {
	students, err := c.studentService.ListStudents()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(students, ""))
}

// GetStudent returns one student by id
func (c *StudentController) GetStudent(ctx *gin.Context) {
	student, err := c.studentService.GetStudent(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student, ""))
}

// ListChildren returns the students linked to a parent
func (c *StudentController) ListChildren(ctx *gin.Context) {
	students, err := c.studentService.ListChildren(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(students, ""))
}

// UpdateStudent applies a partial update to a student
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	var fields dto.UpdateFieldsRequest
	if err := ctx.ShouldBindJSON(&fields); err != nil {
		bindError(ctx, err)
		return
	}

	student, err := c.studentService.UpdateStudent(ctx.Param("id"), fields)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student, "Student updated"))
}

// DeleteStudent removes a student and their dependent records
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	if err := c.studentService.DeleteStudent(ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Student deleted"})
}
