package dbstore

import (
	"errors"
	"net/url"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensah/schoolms/internal/app/models"
	"github.com/mensah/schoolms/internal/config"
	"github.com/mensah/schoolms/internal/pkg/apperrors"
)

// newTestStore connects to the database named by TEST_DATABASE_URL and
// resets the schema. Tests are skipped when the variable is unset.
func newTestStore(t *testing.T) *DBStore {
	t.Helper()

	raw := os.Getenv("TEST_DATABASE_URL")
	if raw == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	password, _ := parsed.User.Password()

	cfg := &config.Config{}
	cfg.Storage.Engine = config.EnginePostgres
	cfg.Database.Host = parsed.Hostname()
	cfg.Database.Port = parsed.Port()
	cfg.Database.User = parsed.User.Username()
	cfg.Database.Password = password
	cfg.Database.DBName = parsed.Path[1:]
	cfg.Database.SSLMode = "disable"
	cfg.Database.MaxIdleConns = 2
	cfg.Database.MaxOpenConns = 5
	cfg.Database.ConnMaxLifetime = "5m"

	store, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, store.ResetSchema())
	require.NoError(t, store.Reload())

	t.Cleanup(func() {
		_ = store.Close()
		_ = store.Disconnect()
	})
	return store
}

func TestMissingConnectionParams(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Engine = config.EnginePostgres

	_, err := New(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConfiguration))
}

func TestSaveCommitAndGet(t *testing.T) {
	store := newTestStore(t)

	class := &models.Class{ClassName: "P4A", HeadClassTeacher: "t1", AcademicYear: "2026/2027"}
	require.NoError(t, store.Save(class))

	got, ok := store.GetByID(models.KindClass, class.ID)
	require.True(t, ok)
	assert.Equal(t, class.ClassName, got.(*models.Class).ClassName)
}

func TestReloadDiscardsUncommitted(t *testing.T) {
	store := newTestStore(t)

	class := &models.Class{ClassName: "Discarded", HeadClassTeacher: "t1", AcademicYear: "2026/2027"}
	require.NoError(t, store.New(class))

	// rollback instead of commit
	require.NoError(t, store.Reload())

	_, ok := store.GetByID(models.KindClass, class.ID)
	assert.False(t, ok)
}

func TestEmailUniqueViolation(t *testing.T) {
	store := newTestStore(t)

	first := &models.User{FirstName: "A", LastName: "B", Email: "dup@school.edu", Password: "x", Gender: models.GenderMale}
	require.NoError(t, store.Save(first))

	second := &models.User{FirstName: "C", LastName: "D", Email: "dup@school.edu", Password: "x", Gender: models.GenderFemale}
	err := store.Save(second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrEmailAlreadyExists))
}

func TestCascadeDeleteClass(t *testing.T) {
	store := newTestStore(t)

	parent := &models.Parent{}
	class := &models.Class{ClassName: "P4A", HeadClassTeacher: "t1", AcademicYear: "2026/2027"}
	require.NoError(t, store.Save(parent, class))

	student := &models.Student{
		FirstName: "Ama", LastName: "Owusu", Gender: models.GenderFemale,
		ParentID: parent.ID, ExpectedGraduation: models.Now(), AdmissionDate: models.Now(),
	}
	require.NoError(t, store.Save(student))

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Save(&models.Attendance{
			Status: models.AttendancePresent, Date: models.Now(),
			ClassID: class.ID, StudentID: student.ID,
		}))
	}

	require.NoError(t, store.DeleteByID(models.KindClass, class.ID))

	count, err := store.Query(models.KindAttendance).Count()
	require.NoError(t, err)
	assert.Zero(t, count)

	_, ok := store.GetByID(models.KindStudent, student.ID)
	assert.True(t, ok)
}

func TestQueryTranslation(t *testing.T) {
	store := newTestStore(t)

	class := &models.Class{ClassName: "P4A", HeadClassTeacher: "t1", AcademicYear: "2026/2027"}
	other := &models.Class{ClassName: "P4B", HeadClassTeacher: "t1", AcademicYear: "2026/2027"}
	require.NoError(t, store.Save(class, other))

	found, ok, err := store.Query(models.KindClass).Where("class_name", "P4B").First()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, other.ID, found.EntityID())

	_, err = store.Query(models.KindClass).Where("shoe_size", 42).All()
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidQuery))
}
