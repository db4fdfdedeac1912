package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mensah/schoolms/internal/app/models"
	"github.com/mensah/schoolms/internal/app/models/dto"
	"github.com/mensah/schoolms/internal/app/services"
	"github.com/mensah/schoolms/internal/middleware"
)

// GradebookController handles grade recording and reports
type GradebookController struct {
	gradebookService services.GradebookService
}

// NewGradebookController creates a new GradebookController
func NewGradebookController(gradebookService services.GradebookService) *GradebookController {
	return &GradebookController{gradebookService: gradebookService}
}

// RecordGrade records a gradebook entry
func (c *GradebookController) RecordGrade(ctx *gin.Context) {
	var req dto.RecordGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	grade := &models.Grade{
		Grade:        req.Grade,
		OutOf:        req.OutOf,
		GradeDesc:    req.GradeDesc,
		Term:         req.Term,
		AcademicYear: req.AcademicYear,
		CourseID:     req.CourseID,
		ClassID:      req.ClassID,
		StudentID:    req.StudentID,
	}

	created, err := c.gradebookService.RecordGrade(grade)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(created, "Grade recorded"))
}

// GetGrade returns one gradebook entry by id
func (c *GradebookController) GetGrade(ctx *gin.Context) {
	grade, err := c.gradebookService.GetGrade(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(grade, ""))
}

// UpdateGrade applies a partial update to a gradebook entry
func (c *GradebookController) UpdateGrade(ctx *gin.Context) {
	var fields dto.UpdateFieldsRequest
	if err := ctx.ShouldBindJSON(&fields); err != nil {
		bindError(ctx, err)
		return
	}

	grade, err := c.gradebookService.UpdateGrade(ctx.Param("id"), fields)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(grade, "Grade updated"))
}

// DeleteGrade removes a gradebook entry
func (c *GradebookController) DeleteGrade(ctx *gin.Context) {
	if err := c.gradebookService.DeleteGrade(ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Grade deleted"})
}

// StudentGrades returns every grade for a student
func (c *GradebookController) StudentGrades(ctx *gin.Context) {
	grades, err := c.gradebookService.StudentGrades(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(grades, ""))
}

// StudentReport returns a student's term report grouped by course
func (c *GradebookController) StudentReport(ctx *gin.Context) {
	report, err := c.gradebookService.StudentReport(ctx.Param("id"), ctx.Query("term"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(report, ""))
}
