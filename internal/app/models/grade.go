package models

// GradeDescriptions is the closed set of values Grade.GradeDesc accepts.
var GradeDescriptions = []string{
	"homework", "classwork", "classtest", "assessment", "exam", "dictation", "quiz",
}

// Grade is one gradebook entry for a student in a course and class.
// The mark is bounded to [0,100] and can never exceed out_of.
type Grade struct {
	Base
	Grade        int    `json:"grade" gorm:"column:grade" validate:"min=0,max=100"`
	OutOf        int    `json:"out_of" gorm:"column:out_of" validate:"min=0,max=100,gtefield=Grade"`
	GradeDesc    string `json:"grade_desc" gorm:"column:grade_desc;size:50" validate:"required,oneof=homework classwork classtest assessment exam dictation quiz"`
	Term         string `json:"term" gorm:"column:term;size:50"`
	AcademicYear string `json:"academic_year" gorm:"column:academic_year;size:50"`
	CourseID     string `json:"course_id" gorm:"column:course_id;size:50" validate:"required"`
	ClassID      string `json:"class_id" gorm:"column:class_id;size:50" validate:"required"`
	StudentID    string `json:"student_id" gorm:"column:student_id;size:50" validate:"required"`
}

// Kind returns the type discriminator
func (Grade) Kind() Kind { return KindGrade }

// TableName returns the backing table
func (Grade) TableName() string { return "gradebook" }

// Validate checks the grade invariants
func (g *Grade) Validate() error { return validateStruct(g) }

// Percent returns the mark as a fraction of out_of in percent.
func (g *Grade) Percent() float64 {
	if g.OutOf == 0 {
		return 0
	}
	return float64(g.Grade) / float64(g.OutOf) * 100
}
