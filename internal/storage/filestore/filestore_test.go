package filestore

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensah/schoolms/internal/app/models"
	"github.com/mensah/schoolms/internal/pkg/apperrors"
	"github.com/mensah/schoolms/internal/storage"
)

func newStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "school.json")
	store, err := New(path)
	require.NoError(t, err)
	return store, path
}

func seedClassroom(t *testing.T, store *FileStore) (*models.Class, *models.Student) {
	t.Helper()

	parent := &models.Parent{}
	parent.Init()
	require.NoError(t, store.New(parent))

	class := &models.Class{ClassName: "P4A", HeadClassTeacher: "t1", AcademicYear: "2026/2027"}
	student := &models.Student{
		FirstName: "Ama", LastName: "Owusu", Gender: models.GenderFemale,
		ParentID: parent.ID, ExpectedGraduation: models.Now(), AdmissionDate: models.Now(),
	}
	require.NoError(t, store.Save(class, student))
	return class, student
}

func TestSaveReloadGet(t *testing.T) {
	store, path := newStore(t)
	class, student := seedClassroom(t, store)

	// a second instance over the same file sees the flushed state
	other, err := New(path)
	require.NoError(t, err)

	got, ok := other.GetByID(models.KindStudent, student.ID)
	require.True(t, ok)
	assert.Equal(t, student, got)

	gotClass, ok := other.GetByID(models.KindClass, class.ID)
	require.True(t, ok)
	assert.Equal(t, class.ClassName, gotClass.(*models.Class).ClassName)
}

func TestGetMissing(t *testing.T) {
	store, _ := newStore(t)
	_, ok := store.GetByID(models.KindStudent, "nope")
	assert.False(t, ok)
}

func TestNewRejectsInvalidEntity(t *testing.T) {
	store, _ := newStore(t)
	err := store.New(&models.Class{ClassName: "no teacher"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestNewChecksReferences(t *testing.T) {
	store, _ := newStore(t)
	class, student := seedClassroom(t, store)

	grade := &models.Grade{
		Grade: 50, OutOf: 100, GradeDesc: "exam",
		CourseID: "missing-course", ClassID: class.ID, StudentID: student.ID,
	}
	err := store.New(grade)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestEmailUniqueness(t *testing.T) {
	store, _ := newStore(t)

	first := &models.User{FirstName: "A", LastName: "B", Email: "dup@school.edu", Password: "x", Gender: models.GenderMale}
	require.NoError(t, store.Save(first))

	second := &models.User{FirstName: "C", LastName: "D", Email: "dup@school.edu", Password: "x", Gender: models.GenderFemale}
	err := store.Save(second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrEmailAlreadyExists))
}

func TestCascadeDeleteClass(t *testing.T) {
	store, _ := newStore(t)
	class, student := seedClassroom(t, store)

	course := &models.Course{CourseName: "Maths", CourseDescription: "d", TeacherID: "t1"}
	require.NoError(t, store.Save(course))

	var deps []models.Entity
	for i := 0; i < 3; i++ {
		deps = append(deps, &models.Attendance{
			Status: models.AttendancePresent, Date: models.Now(),
			ClassID: class.ID, StudentID: student.ID,
		})
	}
	for i := 0; i < 2; i++ {
		deps = append(deps, &models.Grade{
			Grade: 70, OutOf: 100, GradeDesc: "classtest",
			CourseID: course.ID, ClassID: class.ID, StudentID: student.ID,
		})
	}
	deps = append(deps, &models.StudentClassAssociation{StudentID: student.ID, ClassID: class.ID})
	require.NoError(t, store.Save(deps...))

	require.NoError(t, store.DeleteByID(models.KindClass, class.ID))
	require.NoError(t, store.Save())

	for _, kind := range []models.Kind{models.KindAttendance, models.KindGrade, models.KindStudentClassAssociation} {
		count, err := store.Query(kind).Count()
		require.NoError(t, err)
		assert.Zero(t, count, kind)
	}

	// the student survives; only class-owned rows go
	_, ok := store.GetByID(models.KindStudent, student.ID)
	assert.True(t, ok)
}

func TestDeleteMissing(t *testing.T) {
	store, _ := newStore(t)
	err := store.DeleteByID(models.KindClass, "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestQueryFiltering(t *testing.T) {
	store, _ := newStore(t)
	class, student := seedClassroom(t, store)

	other := &models.Student{
		FirstName: "Yaw", LastName: "Owusu", Gender: models.GenderMale,
		ParentID: student.ParentID, ExpectedGraduation: models.Now(), AdmissionDate: models.Now(),
	}
	require.NoError(t, store.Save(other))

	var records []models.Entity
	for i := 0; i < 10; i++ {
		id := student.ID
		if i >= 5 {
			id = other.ID
		}
		records = append(records, &models.Attendance{
			Status: models.AttendancePresent, Date: models.Now(),
			ClassID: class.ID, StudentID: id,
		})
	}
	require.NoError(t, store.Save(records...))

	count, err := store.Query(models.KindAttendance).Where("student_id", student.ID).Count()
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	all, err := store.Query(models.KindAttendance).All()
	require.NoError(t, err)
	assert.Len(t, all, 10)
}

func TestQueryCursorsAreIndependent(t *testing.T) {
	store, _ := newStore(t)
	class, student := seedClassroom(t, store)

	require.NoError(t, store.Save(&models.Attendance{
		Status: models.AttendanceAbsent, Date: models.Now(),
		ClassID: class.ID, StudentID: student.ID,
	}))

	base := store.Query(models.KindAttendance).Where("class_id", class.ID)
	narrowed := base.Where("student_id", "someone-else")

	baseCount, err := base.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), baseCount)

	narrowedCount, err := narrowed.Count()
	require.NoError(t, err)
	assert.Zero(t, narrowedCount)

	// a consumed cursor can run again
	again, err := base.Count()
	require.NoError(t, err)
	assert.Equal(t, baseCount, again)
}

func TestQueryUnknownField(t *testing.T) {
	store, _ := newStore(t)
	_, err := store.Query(models.KindStudent).Where("shoe_size", 42).All()
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidQuery))
}

func TestQueryUnknownKind(t *testing.T) {
	store, _ := newStore(t)
	_, err := store.Query(models.Kind("Ghost")).All()
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnknownType))
}

func TestCloseThenReloadRestarts(t *testing.T) {
	store, _ := newStore(t)
	_, student := seedClassroom(t, store)

	require.NoError(t, store.Close())
	_, ok := store.GetByID(models.KindStudent, student.ID)
	assert.False(t, ok)

	require.NoError(t, store.Reload())
	_, ok = store.GetByID(models.KindStudent, student.ID)
	assert.True(t, ok)
}

func TestLastWriterWins(t *testing.T) {
	_, path := newStore(t)

	a, err := New(path)
	require.NoError(t, err)
	b, err := New(path)
	require.NoError(t, err)

	classA := &models.Class{ClassName: "From A", HeadClassTeacher: "t1", AcademicYear: "2026/2027"}
	require.NoError(t, a.Save(classA))

	classB := &models.Class{ClassName: "From B", HeadClassTeacher: "t2", AcademicYear: "2026/2027"}
	require.NoError(t, b.Save(classB))

	// b flushed last without ever loading a's write, so a's write is gone
	fresh, err := New(path)
	require.NoError(t, err)

	_, ok := fresh.GetByID(models.KindClass, classA.ID)
	assert.False(t, ok)
	_, ok = fresh.GetByID(models.KindClass, classB.ID)
	assert.True(t, ok)
}

func TestKeyRoundTrip(t *testing.T) {
	key := storage.Key{Kind: models.KindStudent, ID: "abc"}
	parsed, err := storage.ParseKey(key.String())
	require.NoError(t, err)
	assert.Equal(t, key, parsed)

	_, err = storage.ParseKey("no-separator")
	require.Error(t, err)
}
