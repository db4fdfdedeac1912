package models

// Association records are first-class entities representing many-to-many
// relationship edges. They carry their own id so they can be independently
// created, queried, and deleted through the same storage contract as any
// other entity.

// ClassCourseAssociation links a class to a course it takes.
type ClassCourseAssociation struct {
	Base
	ClassID     string `json:"class_id" gorm:"column:class_id;size:50;index" validate:"required"`
	CourseID    string `json:"course_id" gorm:"column:course_id;size:50;index" validate:"required"`
	Description string `json:"description" gorm:"column:description;size:50"`
}

// Kind returns the type discriminator
func (ClassCourseAssociation) Kind() Kind { return KindClassCourseAssociation }

// TableName returns the backing table
func (ClassCourseAssociation) TableName() string { return "class_course_assoc" }

// Validate checks the association invariants
func (a *ClassCourseAssociation) Validate() error { return validateStruct(a) }

// StudentClassAssociation enrolls a student in a class.
type StudentClassAssociation struct {
	Base
	StudentID string `json:"student_id" gorm:"column:student_id;size:50;index" validate:"required"`
	ClassID   string `json:"class_id" gorm:"column:class_id;size:50;index" validate:"required"`
}

// Kind returns the type discriminator
func (StudentClassAssociation) Kind() Kind { return KindStudentClassAssociation }

// TableName returns the backing table
func (StudentClassAssociation) TableName() string { return "student_class_assoc" }

// Validate checks the association invariants
func (a *StudentClassAssociation) Validate() error { return validateStruct(a) }

// ParentStudentAssociation links a parent to one of their children.
type ParentStudentAssociation struct {
	Base
	ParentID    string `json:"parent_id" gorm:"column:parent_id;size:50;index" validate:"required"`
	StudentID   string `json:"student_id" gorm:"column:student_id;size:50;index" validate:"required"`
	Description string `json:"description" gorm:"column:description;size:100"`
}

// Kind returns the type discriminator
func (ParentStudentAssociation) Kind() Kind { return KindParentStudentAssociation }

// TableName returns the backing table
func (ParentStudentAssociation) TableName() string { return "parent_student_association" }

// Validate checks the association invariants
func (a *ParentStudentAssociation) Validate() error { return validateStruct(a) }

// StaffCourseAssociation assigns a course to a staff member.
type StaffCourseAssociation struct {
	Base
	StaffID  string `json:"staff_id" gorm:"column:staff_id;size:50;index" validate:"required"`
	CourseID string `json:"course_id" gorm:"column:course_id;size:50;index" validate:"required"`
}

// Kind returns the type discriminator
func (StaffCourseAssociation) Kind() Kind { return KindStaffCourseAssociation }

// TableName returns the backing table
func (StaffCourseAssociation) TableName() string { return "staff_course_association" }

// Validate checks the association invariants
func (a *StaffCourseAssociation) Validate() error { return validateStruct(a) }
