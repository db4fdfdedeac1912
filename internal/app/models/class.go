package models

// Class is a homeroom group for one academic year. Deleting a class cascades
// to its attendance and grade children and its association rows; see the
// cascade rule table in the storage package.
type Class struct {
	Base
	ClassName          string `json:"class_name" gorm:"column:class_name;size:50" validate:"required"`
	HeadClassTeacher   string `json:"head_class_teacher" gorm:"column:head_class_teacher;size:50" validate:"required"`
	AssistClassTeacher string `json:"assist_class_teacher" gorm:"column:assist_class_teacher;size:50"`
	AcademicYear       string `json:"academic_year" gorm:"column:academic_year;size:50" validate:"required"`
}

// Kind returns the type discriminator
func (Class) Kind() Kind { return KindClass }

// TableName returns the backing table
func (Class) TableName() string { return "classes" }

// Validate checks the class invariants
func (c *Class) Validate() error { return validateStruct(c) }
