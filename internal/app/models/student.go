package models

// Student is a learner enrolled in the school. It belongs to one parent and
// reaches classes through StudentClassAssociation records.
type Student struct {
	Base
	FirstName          string    `json:"first_name" gorm:"column:first_name;size:50" validate:"required"`
	LastName           string    `json:"last_name" gorm:"column:last_name;size:50" validate:"required"`
	OtherNames         string    `json:"other_names" gorm:"column:other_names;size:50"`
	DOB                Timestamp `json:"dob" gorm:"column:dob;type:timestamptz"`
	Gender             Gender    `json:"gender" gorm:"column:gender;size:10" validate:"required,oneof=male female"`
	ParentID           string    `json:"parent_id" gorm:"column:parent_id;size:50" validate:"required"`
	ExpectedGraduation Timestamp `json:"expected_graduation" gorm:"column:expected_graduation;type:timestamptz" validate:"required"`
	AdmissionDate      Timestamp `json:"admission_date" gorm:"column:admission_date;type:timestamptz" validate:"required"`
}

// Kind returns the type discriminator
func (Student) Kind() Kind { return KindStudent }

// TableName returns the backing table
func (Student) TableName() string { return "students" }

// Validate checks the student invariants
func (s *Student) Validate() error { return validateStruct(s) }
