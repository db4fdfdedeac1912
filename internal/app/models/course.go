package models

// Course is a taught subject, connected to classes through
// ClassCourseAssociation records.
type Course struct {
	Base
	CourseName        string `json:"course_name" gorm:"column:course_name;size:50" validate:"required"`
	CourseDescription string `json:"course_description" gorm:"column:course_description;size:124" validate:"required"`
	TeacherID         string `json:"teacher_id" gorm:"column:teacher_id;size:50" validate:"required"`
}

// Kind returns the type discriminator
func (Course) Kind() Kind { return KindCourse }

// TableName returns the backing table
func (Course) TableName() string { return "courses" }

// Validate checks the course invariants
func (c *Course) Validate() error { return validateStruct(c) }
