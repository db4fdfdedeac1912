package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mensah/schoolms/internal/app/models"
	"github.com/mensah/schoolms/internal/app/models/dto"
	"github.com/mensah/schoolms/internal/app/services"
	"github.com/mensah/schoolms/internal/middleware"
)

// CourseController handles course management
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// CreateCourse creates a course
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	course := &models.Course{
		CourseName:        req.CourseName,
		CourseDescription: req.CourseDescription,
		TeacherID:         req.TeacherID,
	}

	created, err := c.courseService.CreateCourse(course)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(created, "Course created"))
}

// ListCourses returns every course
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses, ""))
}

// GetCourse returns one course by id
func (c *CourseController) GetCourse(ctx *gin.Context) {
	course, err := c.courseService.GetCourse(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course, ""))
}

// UpdateCourse applies a partial update to a course
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	var fields dto.UpdateFieldsRequest
	if err := ctx.ShouldBindJSON(&fields); err != nil {
		bindError(ctx, err)
		return
	}

	course, err := c.courseService.UpdateCourse(ctx.Param("id"), fields)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course, "Course updated"))
}

// DeleteCourse removes a course and its class assignments
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	if err := c.courseService.DeleteCourse(ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Course deleted"})
}

// Classes returns the classes taking a course
func (c *CourseController) Classes(ctx *gin.Context) {
	classes, err := c.courseService.Classes(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(classes, ""))
}
