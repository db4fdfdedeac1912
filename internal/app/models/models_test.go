package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensah/schoolms/internal/pkg/apperrors"
)

func validUser() *User {
	u := &User{
		FirstName: "Ama",
		LastName:  "Asante",
		Email:     "ama.asante@school.edu",
		Password:  "secretpass",
		Gender:    GenderFemale,
	}
	u.Init()
	return u
}

func TestUserValidation(t *testing.T) {
	u := validUser()
	require.NoError(t, u.Validate())

	u.Gender = "other"
	err := u.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "gender", verr.Field)
}

func TestUserMissingEmail(t *testing.T) {
	u := validUser()
	u.Email = ""
	require.Error(t, u.Validate())

	u.Email = "not-an-email"
	require.Error(t, u.Validate())
}

func TestStaffValidation(t *testing.T) {
	s := &Staff{
		MaritalStatus: "married",
		BankAcc:       "0123456789",
	}
	s.Init()
	require.NoError(t, s.Validate())

	s.MaritalStatus = "complicated"
	require.Error(t, s.Validate())

	s.MaritalStatus = "single"
	s.BankAcc = "123" // must be 10 digits
	require.Error(t, s.Validate())

	s.BankAcc = "12345678ab"
	require.Error(t, s.Validate())
}

func TestGradeValidation(t *testing.T) {
	g := &Grade{
		Grade:     85,
		OutOf:     100,
		GradeDesc: "homework",
		CourseID:  "c1",
		ClassID:   "cl1",
		StudentID: "s1",
	}
	g.Init()
	require.NoError(t, g.Validate())

	g.Grade = 101
	require.Error(t, g.Validate())

	g.Grade = 90
	g.OutOf = 80 // out_of below the mark
	require.Error(t, g.Validate())

	g.OutOf = 100
	g.GradeDesc = "pop-quiz"
	require.Error(t, g.Validate())
}

func TestGradePercent(t *testing.T) {
	g := &Grade{Grade: 40, OutOf: 80}
	assert.InDelta(t, 50.0, g.Percent(), 0.001)

	zero := &Grade{Grade: 0, OutOf: 0}
	assert.Equal(t, 0.0, zero.Percent())
}

func TestAttendanceValidation(t *testing.T) {
	a := &Attendance{
		Status:    AttendancePresent,
		Date:      Now(),
		ClassID:   "cl1",
		StudentID: "s1",
	}
	a.Init()
	require.NoError(t, a.Validate())
	assert.True(t, a.Present())

	a.Status = 2
	require.Error(t, a.Validate())
}

func TestInitAssignsIDAndTimestamps(t *testing.T) {
	u := validUser()
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())
	assert.False(t, u.UpdatedAt.IsZero())

	// Init must not replace an explicit id.
	v := &User{Base: Base{ID: "fixed-id"}}
	v.Init()
	assert.Equal(t, "fixed-id", v.ID)
}

func TestTimestampRoundTrip(t *testing.T) {
	ts := Now()
	text, err := ts.MarshalJSON()
	require.NoError(t, err)

	var back Timestamp
	require.NoError(t, back.UnmarshalJSON(text))
	assert.True(t, ts.Equal(back.Time))
}

func TestTimestampZero(t *testing.T) {
	var zero Timestamp
	text, err := zero.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `""`, string(text))

	var back Timestamp
	require.NoError(t, back.UnmarshalJSON([]byte(`""`)))
	assert.True(t, back.IsZero())
}

func TestParseTimestamp(t *testing.T) {
	ts, err := ParseTimestamp("2026-03-01 08:30:00")
	require.NoError(t, err)
	assert.Equal(t, 2026, ts.Year())
	assert.Equal(t, time.March, ts.Month())

	_, err = ParseTimestamp("01/03/2026")
	require.Error(t, err)
}

func TestApplyUpdatesFields(t *testing.T) {
	u := validUser()
	before := u.UpdatedAt

	updated, err := Apply(u, map[string]interface{}{"first_name": "Efua"})
	require.NoError(t, err)

	changed := updated.(*User)
	assert.Equal(t, "Efua", changed.FirstName)
	assert.Equal(t, u.ID, changed.ID)
	assert.False(t, changed.UpdatedAt.Before(before.Time))
	// the original is untouched
	assert.Equal(t, "Ama", u.FirstName)
}

func TestApplyRejectsUnknownField(t *testing.T) {
	u := validUser()
	_, err := Apply(u, map[string]interface{}{"nickname": "Am"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestApplyRejectsImmutableField(t *testing.T) {
	u := validUser()
	for _, field := range []string{"id", "created_at"} {
		_, err := Apply(u, map[string]interface{}{field: "x"})
		require.Error(t, err, field)
	}
}

func TestApplyRevalidates(t *testing.T) {
	u := validUser()
	_, err := Apply(u, map[string]interface{}{"gender": "unknown"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestRegistryCoversEveryKind(t *testing.T) {
	for _, kind := range Kinds() {
		e, ok := NewOf(kind)
		require.True(t, ok, kind)
		assert.Equal(t, kind, e.Kind())
		assert.NotEmpty(t, e.TableName())
	}

	_, ok := NewOf(Kind("Ghost"))
	assert.False(t, ok)
}
