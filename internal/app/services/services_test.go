package services

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensah/schoolms/internal/app/models"
	"github.com/mensah/schoolms/internal/pkg/apperrors"
	"github.com/mensah/schoolms/internal/storage/filestore"
)

func newServices(t *testing.T) *Services {
	t.Helper()
	store, err := filestore.New(filepath.Join(t.TempDir(), "school.json"))
	require.NoError(t, err)
	return NewServices(store)
}

func registerParent(t *testing.T, svcs *Services) *models.User {
	t.Helper()
	user, err := svcs.User.Register(&models.User{
		FirstName: "Kofi", LastName: "Owusu",
		Email: "kofi@example.com", Password: "parentpass",
		Gender: models.GenderMale,
	}, RoleParent)
	require.NoError(t, err)
	return user
}

func admitStudent(t *testing.T, svcs *Services, parentID, name string) *models.Student {
	t.Helper()
	student, err := svcs.Student.CreateStudent(&models.Student{
		FirstName: name, LastName: "Owusu", Gender: models.GenderFemale,
		ParentID: parentID, ExpectedGraduation: models.Now(), AdmissionDate: models.Now(),
	})
	require.NoError(t, err)
	return student
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svcs := newServices(t)

	user, err := svcs.User.Register(&models.User{
		FirstName: "Akosua", LastName: "Mensah",
		Email: "akosua@school.edu", Password: "teachpass123",
		Gender: models.GenderFemale,
	}, RoleStaff)
	require.NoError(t, err)
	assert.NotEqual(t, "teachpass123", user.Password)

	// the staff specialization shares the user id
	staff, err := svcs.User.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, staff.Email)

	authed, err := svcs.User.Authenticate("akosua@school.edu", "teachpass123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)
	assert.False(t, authed.LastLoginDate.IsZero())

	_, err = svcs.User.Authenticate("akosua@school.edu", "wrong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))

	_, err = svcs.User.Authenticate("nobody@school.edu", "teachpass123")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))
}

func TestRegisterShortPassword(t *testing.T) {
	svcs := newServices(t)
	_, err := svcs.User.Register(&models.User{
		FirstName: "A", LastName: "B", Email: "a@b.com", Password: "short",
		Gender: models.GenderMale,
	}, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svcs := newServices(t)
	registerParent(t, svcs)

	_, err := svcs.User.Register(&models.User{
		FirstName: "Other", LastName: "Person",
		Email: "kofi@example.com", Password: "longenough",
		Gender: models.GenderFemale,
	}, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrEmailAlreadyExists))
}

func TestStudentAdmissionAndChildren(t *testing.T) {
	svcs := newServices(t)
	parent := registerParent(t, svcs)

	first := admitStudent(t, svcs, parent.ID, "Ama")
	admitStudent(t, svcs, parent.ID, "Yaw")

	children, err := svcs.Student.ListChildren(parent.ID)
	require.NoError(t, err)
	assert.Len(t, children, 2)

	_, err = svcs.Student.CreateStudent(&models.Student{
		FirstName: "X", LastName: "Y", Gender: models.GenderMale,
		ParentID: "missing", ExpectedGraduation: models.Now(), AdmissionDate: models.Now(),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	got, err := svcs.Student.GetStudent(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ama", got.FirstName)
}

func TestEnrollmentLifecycle(t *testing.T) {
	svcs := newServices(t)
	parent := registerParent(t, svcs)
	student := admitStudent(t, svcs, parent.ID, "Ama")

	class, err := svcs.Class.CreateClass(&models.Class{
		ClassName: "P4A", HeadClassTeacher: "t1", AcademicYear: "2026/2027",
	})
	require.NoError(t, err)

	require.NoError(t, svcs.Class.EnrollStudent(class.ID, student.ID))

	// double enrollment is a conflict
	err = svcs.Class.EnrollStudent(class.ID, student.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))

	roster, err := svcs.Class.Students(class.ID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, student.ID, roster[0].ID)

	require.NoError(t, svcs.Class.UnenrollStudent(class.ID, student.ID))
	roster, err = svcs.Class.Students(class.ID)
	require.NoError(t, err)
	assert.Empty(t, roster)
}

func TestClassDeleteCascades(t *testing.T) {
	svcs := newServices(t)
	parent := registerParent(t, svcs)
	student := admitStudent(t, svcs, parent.ID, "Ama")

	class, err := svcs.Class.CreateClass(&models.Class{
		ClassName: "P4A", HeadClassTeacher: "t1", AcademicYear: "2026/2027",
	})
	require.NoError(t, err)
	require.NoError(t, svcs.Class.EnrollStudent(class.ID, student.ID))

	course, err := svcs.Course.CreateCourse(&models.Course{
		CourseName: "Maths", CourseDescription: "d", TeacherID: "t1",
	})
	require.NoError(t, err)

	_, err = svcs.Gradebook.RecordGrade(&models.Grade{
		Grade: 70, OutOf: 100, GradeDesc: "exam",
		CourseID: course.ID, ClassID: class.ID, StudentID: student.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svcs.Class.DeleteClass(class.ID))

	_, err = svcs.Class.GetClass(class.ID)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	grades, err := svcs.Gradebook.StudentGrades(student.ID)
	require.NoError(t, err)
	assert.Empty(t, grades)
}

func TestGradebookReport(t *testing.T) {
	svcs := newServices(t)
	parent := registerParent(t, svcs)
	student := admitStudent(t, svcs, parent.ID, "Ama")

	class, err := svcs.Class.CreateClass(&models.Class{
		ClassName: "P4A", HeadClassTeacher: "t1", AcademicYear: "2026/2027",
	})
	require.NoError(t, err)

	maths, err := svcs.Course.CreateCourse(&models.Course{
		CourseName: "Maths", CourseDescription: "d", TeacherID: "t1",
	})
	require.NoError(t, err)
	english, err := svcs.Course.CreateCourse(&models.Course{
		CourseName: "English", CourseDescription: "d", TeacherID: "t1",
	})
	require.NoError(t, err)

	for _, g := range []struct {
		course *models.Course
		mark   int
		term   string
	}{
		{maths, 80, "first"},
		{maths, 60, "first"},
		{english, 90, "first"},
		{english, 40, "second"},
	} {
		_, err := svcs.Gradebook.RecordGrade(&models.Grade{
			Grade: g.mark, OutOf: 100, GradeDesc: "classtest", Term: g.term,
			CourseID: g.course.ID, ClassID: class.ID, StudentID: student.ID,
		})
		require.NoError(t, err)
	}

	report, err := svcs.Gradebook.StudentReport(student.ID, "first")
	require.NoError(t, err)
	assert.Len(t, report.Courses[maths.ID], 2)
	assert.Len(t, report.Courses[english.ID], 1)
	assert.InDelta(t, (80.0+60.0+90.0)/3.0, report.Average, 0.001)

	empty, err := svcs.Gradebook.StudentReport(student.ID, "third")
	require.NoError(t, err)
	assert.Empty(t, empty.Courses)
	assert.Zero(t, empty.Average)
}

func TestUpdateGradeRejectsBadMark(t *testing.T) {
	svcs := newServices(t)
	parent := registerParent(t, svcs)
	student := admitStudent(t, svcs, parent.ID, "Ama")

	class, err := svcs.Class.CreateClass(&models.Class{
		ClassName: "P4A", HeadClassTeacher: "t1", AcademicYear: "2026/2027",
	})
	require.NoError(t, err)
	course, err := svcs.Course.CreateCourse(&models.Course{
		CourseName: "Maths", CourseDescription: "d", TeacherID: "t1",
	})
	require.NoError(t, err)

	grade, err := svcs.Gradebook.RecordGrade(&models.Grade{
		Grade: 70, OutOf: 100, GradeDesc: "exam",
		CourseID: course.ID, ClassID: class.ID, StudentID: student.ID,
	})
	require.NoError(t, err)

	_, err = svcs.Gradebook.UpdateGrade(grade.ID, map[string]interface{}{"grade": 101})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	updated, err := svcs.Gradebook.UpdateGrade(grade.ID, map[string]interface{}{"grade": 95})
	require.NoError(t, err)
	assert.Equal(t, 95, updated.Grade)
}

func TestAttendanceSummary(t *testing.T) {
	svcs := newServices(t)
	parent := registerParent(t, svcs)
	student := admitStudent(t, svcs, parent.ID, "Ama")

	class, err := svcs.Class.CreateClass(&models.Class{
		ClassName: "P4A", HeadClassTeacher: "t1", AcademicYear: "2026/2027",
	})
	require.NoError(t, err)

	for day := 1; day <= 4; day++ {
		status := models.AttendancePresent
		if day == 4 {
			status = models.AttendanceAbsent
		}
		_, err := svcs.Attendance.Mark(&models.Attendance{
			Status: status, Term: "first", Date: models.Now(),
			ClassID: class.ID, StudentID: student.ID,
		})
		require.NoError(t, err)
	}

	summary, err := svcs.Attendance.Summary(student.ID, "first")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Present)
	assert.Equal(t, 1, summary.Absent)
	assert.InDelta(t, 0.75, summary.PresenceRate, 0.001)

	other, err := svcs.Attendance.Summary(student.ID, "second")
	require.NoError(t, err)
	assert.Zero(t, other.Present+other.Absent)
	assert.Zero(t, other.PresenceRate)
}

func TestFeedbackLifecycle(t *testing.T) {
	svcs := newServices(t)
	parent := registerParent(t, svcs)

	feedback, err := svcs.Feedback.Create("The portal is great", parent.ID)
	require.NoError(t, err)

	mine, err := svcs.Feedback.ListForUser(parent.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, feedback.ID, mine[0].ID)

	_, err = svcs.Feedback.Create("orphan", "missing-user")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	require.NoError(t, svcs.Feedback.Delete(feedback.ID))
	mine, err = svcs.Feedback.ListForUser(parent.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestDeleteUserRemovesSpecialization(t *testing.T) {
	svcs := newServices(t)
	parent := registerParent(t, svcs)

	_, err := svcs.Feedback.Create("note", parent.ID)
	require.NoError(t, err)

	require.NoError(t, svcs.User.DeleteUser(parent.ID))

	_, err = svcs.User.GetUser(parent.ID)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	feedbacks, err := svcs.Feedback.List()
	require.NoError(t, err)
	assert.Empty(t, feedbacks)
}
