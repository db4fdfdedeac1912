package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensah/schoolms/internal/app/models"
	"github.com/mensah/schoolms/internal/pkg/apperrors"
)

// samples holds one valid instance per registered kind.
func samples() []models.Entity {
	return []models.Entity{
		&models.User{FirstName: "Ama", LastName: "Asante", Email: "ama@school.edu", Password: "x", Gender: models.GenderFemale},
		&models.Staff{MaritalStatus: "single", Role: "teacher"},
		&models.Parent{MaritalStatus: "married", Occupation: "nurse"},
		&models.Student{FirstName: "Yaw", LastName: "Owusu", Gender: models.GenderMale, ParentID: "p1",
			ExpectedGraduation: models.Now(), AdmissionDate: models.Now()},
		&models.Class{ClassName: "P4A", HeadClassTeacher: "t1", AcademicYear: "2026/2027"},
		&models.Course{CourseName: "Maths", CourseDescription: "Primary maths", TeacherID: "t1"},
		&models.Grade{Grade: 85, OutOf: 100, GradeDesc: "homework", CourseID: "c1", ClassID: "cl1", StudentID: "s1"},
		&models.Attendance{Status: models.AttendancePresent, Date: models.Now(), ClassID: "cl1", StudentID: "s1"},
		&models.Feedback{Content: "Great term", UserID: "u1"},
		&models.Qualification{Name: "BEd Mathematics", StaffID: "t1"},
		&models.ClassCourseAssociation{ClassID: "cl1", CourseID: "c1"},
		&models.StudentClassAssociation{StudentID: "s1", ClassID: "cl1"},
		&models.ParentStudentAssociation{ParentID: "p1", StudentID: "s1"},
		&models.StaffCourseAssociation{StaffID: "t1", CourseID: "c1"},
	}
}

func TestRoundTripEveryKind(t *testing.T) {
	seen := map[models.Kind]bool{}
	for _, e := range samples() {
		e.Init()
		seen[e.Kind()] = true

		doc, err := Encode(e)
		require.NoError(t, err, e.Kind())
		assert.Equal(t, string(e.Kind()), doc[ClassKey])

		back, err := Decode(doc)
		require.NoError(t, err, e.Kind())
		assert.Equal(t, e, back, e.Kind())
	}

	// a sample exists for every registered kind
	for _, kind := range models.Kinds() {
		assert.True(t, seen[kind], kind)
	}
}

func TestDecodeUnknownTag(t *testing.T) {
	_, err := Decode(map[string]interface{}{ClassKey: "Ghost"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnknownType))

	_, err = Decode(map[string]interface{}{"id": "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnknownType))
}

func TestDecodeUnknownField(t *testing.T) {
	e := &models.Feedback{Content: "hi", UserID: "u1"}
	e.Init()
	doc, err := Encode(e)
	require.NoError(t, err)

	doc["surprise"] = true
	_, err = Decode(doc)
	require.Error(t, err)
}

func TestDecodeRevalidates(t *testing.T) {
	g := &models.Grade{Grade: 85, OutOf: 100, GradeDesc: "homework", CourseID: "c1", ClassID: "cl1", StudentID: "s1"}
	g.Init()
	doc, err := Encode(g)
	require.NoError(t, err)

	doc["grade"] = 101
	_, err = Decode(doc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestFieldsListsDeclaredNames(t *testing.T) {
	fields, err := Fields(models.KindGrade)
	require.NoError(t, err)
	assert.True(t, fields["grade"])
	assert.True(t, fields["student_id"])
	assert.True(t, fields["id"])
	assert.False(t, fields["surprise"])

	_, err = Fields(models.Kind("Ghost"))
	require.Error(t, err)
}
