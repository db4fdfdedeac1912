package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mensah/schoolms/internal/app/models"
	"github.com/mensah/schoolms/internal/app/models/dto"
	"github.com/mensah/schoolms/internal/app/services"
	"github.com/mensah/schoolms/internal/middleware"
)

// AttendanceController handles attendance marking and listings
type AttendanceController struct {
	attendanceService services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

// Mark records one attendance entry
func (c *AttendanceController) Mark(ctx *gin.Context) {
	var req dto.MarkAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	date, ok := parseDate(ctx, "date", req.Date)
	if !ok {
		return
	}

	record := &models.Attendance{
		Status:       req.Status,
		Term:         req.Term,
		AcademicYear: req.AcademicYear,
		Date:         date,
		ClassID:      req.ClassID,
		StudentID:    req.StudentID,
	}

	created, err := c.attendanceService.Mark(record)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(created, "Attendance marked"))
}

// Update applies a partial update to an attendance record
func (c *AttendanceController) Update(ctx *gin.Context) {
	var fields dto.UpdateFieldsRequest
	if err := ctx.ShouldBindJSON(&fields); err != nil {
		bindError(ctx, err)
		return
	}

	record, err := c.attendanceService.Update(ctx.Param("id"), fields)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(record, "Attendance updated"))
}

// Delete removes an attendance record
func (c *AttendanceController) Delete(ctx *gin.Context) {
	if err := c.attendanceService.Delete(ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Attendance deleted"})
}

// ForStudent returns a student's attendance records
func (c *AttendanceController) ForStudent(ctx *gin.Context) {
	records, err := c.attendanceService.ForStudent(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(records, ""))
}

// ForClass returns a class register, optionally filtered by date
func (c *AttendanceController) ForClass(ctx *gin.Context) {
	records, err := c.attendanceService.ForClass(ctx.Param("id"), ctx.Query("date"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(records, ""))
}

// Summary returns a student's presence summary for a term
func (c *AttendanceController) Summary(ctx *gin.Context) {
	summary, err := c.attendanceService.Summary(ctx.Param("id"), ctx.Query("term"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(summary, ""))
}
