// Package seed populates a fresh storage backend with a consistent
// development dataset through the public storage contract.
package seed

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mensah/schoolms/internal/app/models"
	"github.com/mensah/schoolms/internal/app/services"
	"github.com/mensah/schoolms/internal/storage"
)

// CreateDefaultData seeds one staff account, one parent with two
// children, a class taking one course, and a week of attendance plus a
// few grades. Seeding is skipped when any user already exists.
func CreateDefaultData(store storage.Store, lgr zerolog.Logger) error {
	count, err := store.Query(models.KindUser).Count()
	if err != nil {
		return fmt.Errorf("seed precheck failed: %w", err)
	}
	if count > 0 {
		lgr.Info().Msg("Existing data found, skipping seed.")
		return nil
	}

	lgr.Info().Msg("Seeding default data...")
	svcs := services.NewServices(store)

	teacher, err := svcs.User.Register(&models.User{
		FirstName: "Akosua",
		LastName:  "Mensah",
		Email:     "akosua.mensah@school.edu",
		Password:  "teachpass123",
		Gender:    models.GenderFemale,
	}, services.RoleStaff)
	if err != nil {
		return fmt.Errorf("seed staff account: %w", err)
	}

	parent, err := svcs.User.Register(&models.User{
		FirstName: "Kofi",
		LastName:  "Owusu",
		Email:     "kofi.owusu@example.com",
		Password:  "parentpass123",
		Gender:    models.GenderMale,
	}, services.RoleParent)
	if err != nil {
		return fmt.Errorf("seed parent account: %w", err)
	}

	var finalErr error

	class, err := svcs.Class.CreateClass(&models.Class{
		ClassName:        "Primary 4A",
		HeadClassTeacher: teacher.ID,
		AcademicYear:     "2026/2027",
	})
	if err != nil {
		return fmt.Errorf("seed class: %w", err)
	}

	course, err := svcs.Course.CreateCourse(&models.Course{
		CourseName:        "Mathematics",
		CourseDescription: "Primary mathematics",
		TeacherID:         teacher.ID,
	})
	if err != nil {
		return fmt.Errorf("seed course: %w", err)
	}
	if err := svcs.Class.AssignCourse(class.ID, course.ID, ""); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	admission, _ := models.ParseTimestamp("2024-09-02 08:00:00")
	graduation, _ := models.ParseTimestamp("2030-06-30 12:00:00")

	children := []*models.Student{
		{
			FirstName:          "Ama",
			LastName:           "Owusu",
			Gender:             models.GenderFemale,
			ParentID:           parent.ID,
			AdmissionDate:      admission,
			ExpectedGraduation: graduation,
		},
		{
			FirstName:          "Yaw",
			LastName:           "Owusu",
			Gender:             models.GenderMale,
			ParentID:           parent.ID,
			AdmissionDate:      admission,
			ExpectedGraduation: graduation,
		},
	}

	for _, child := range children {
		student, err := svcs.Student.CreateStudent(child)
		if err != nil {
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if err := svcs.Class.EnrollStudent(class.ID, student.ID); err != nil {
			finalErr = errors.Join(finalErr, err)
			continue
		}

		if _, err := svcs.Gradebook.RecordGrade(&models.Grade{
			Grade:        85,
			OutOf:        100,
			GradeDesc:    "homework",
			Term:         "first",
			AcademicYear: "2026/2027",
			CourseID:     course.ID,
			ClassID:      class.ID,
			StudentID:    student.ID,
		}); err != nil {
			finalErr = errors.Join(finalErr, err)
		}

		for day := 1; day <= 5; day++ {
			date, _ := models.ParseTimestamp(fmt.Sprintf("2026-09-%02d 08:00:00", day))
			status := models.AttendancePresent
			if day == 3 {
				status = models.AttendanceAbsent
			}
			if _, err := svcs.Attendance.Mark(&models.Attendance{
				Status:       status,
				Term:         "first",
				AcademicYear: "2026/2027",
				Date:         date,
				ClassID:      class.ID,
				StudentID:    student.ID,
			}); err != nil {
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	if finalErr != nil {
		lgr.Error().Err(finalErr).Msg("Seeding completed with errors")
		return finalErr
	}
	lgr.Info().Msg("Seeding complete.")
	return nil
}
