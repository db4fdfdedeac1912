package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mensah/schoolms/internal/app/models"
	"github.com/mensah/schoolms/internal/app/models/dto"
	"github.com/mensah/schoolms/internal/app/services"
	"github.com/mensah/schoolms/internal/middleware"
)

// ClassController handles class management
type ClassController struct {
	classService services.ClassService
}

// NewClassController creates a new ClassController
func NewClassController(classService services.ClassService) *ClassController {
	return &ClassController{classService: classService}
}

// CreateClass creates a class
func (c *ClassController) CreateClass(ctx *gin.Context) {
	var req dto.CreateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	class := &models.Class{
		ClassName:          req.ClassName,
		HeadClassTeacher:   req.HeadClassTeacher,
		AssistClassTeacher: req.AssistClassTeacher,
		AcademicYear:       req.AcademicYear,
	}

	created, err := c.classService.CreateClass(class)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(created, "Class created"))
}

// ListClasses returns every class
func (c *ClassController) ListClasses(ctx *gin.Context) {
	classes, err := c.classService.ListClasses()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(classes, ""))
}

// GetClass returns one class by id
func (c *ClassController) GetClass(ctx *gin.Context) {
	class, err := c.classService.GetClass(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(class, ""))
}

// UpdateClass applies a partial update to a class
func (c *ClassController) UpdateClass(ctx *gin.Context) {
	var fields dto.UpdateFieldsRequest
	if err := ctx.ShouldBindJSON(&fields); err != nil {
		bindError(ctx, err)
		return
	}

	class, err := c.classService.UpdateClass(ctx.Param("id"), fields)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(class, "Class updated"))
}

// DeleteClass removes a class and its dependent records
func (c *ClassController) DeleteClass(ctx *gin.Context) {
	if err := c.classService.DeleteClass(ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Class deleted"})
}

// EnrollStudent enrolls a student into the class
func (c *ClassController) EnrollStudent(ctx *gin.Context) {
	var req dto.EnrollStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	if err := c.classService.EnrollStudent(ctx.Param("id"), req.StudentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.SuccessResponse{Message: "Student enrolled"})
}

// UnenrollStudent removes a student from the class
func (c *ClassController) UnenrollStudent(ctx *gin.Context) {
	if err := c.classService.UnenrollStudent(ctx.Param("id"), ctx.Param("studentId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Student unenrolled"})
}

// Students returns the class roster
func (c *ClassController) Students(ctx *gin.Context) {
	students, err := c.classService.Students(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(students, ""))
}

// AssignCourse assigns a course to the class
func (c *ClassController) AssignCourse(ctx *gin.Context) {
	var req dto.AssignCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	if err := c.classService.AssignCourse(ctx.Param("id"), req.CourseID, ""); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.SuccessResponse{Message: "Course assigned"})
}

// Courses returns the courses a class takes
func (c *ClassController) Courses(ctx *gin.Context) {
	courses, err := c.classService.Courses(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses, ""))
}
