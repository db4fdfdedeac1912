package models

// Attendance statuses
const (
	AttendanceAbsent  = 0
	AttendancePresent = 1
)

// Attendance is one presence fact for a student in a class on a date.
type Attendance struct {
	Base
	Status       int       `json:"status" gorm:"column:status" validate:"min=0,max=1"`
	Term         string    `json:"term" gorm:"column:term;size:50"`
	AcademicYear string    `json:"academic_year" gorm:"column:academic_year;size:50"`
	Date         Timestamp `json:"date" gorm:"column:date;type:timestamptz" validate:"required"`
	ClassID      string    `json:"class_id" gorm:"column:class_id;size:50" validate:"required"`
	StudentID    string    `json:"student_id" gorm:"column:student_id;size:50" validate:"required"`
}

// Kind returns the type discriminator
func (Attendance) Kind() Kind { return KindAttendance }

// TableName returns the backing table
func (Attendance) TableName() string { return "attendance" }

// Validate checks the attendance invariants
func (a *Attendance) Validate() error { return validateStruct(a) }

// Present reports whether this record marks the student present.
func (a *Attendance) Present() bool { return a.Status == AttendancePresent }
