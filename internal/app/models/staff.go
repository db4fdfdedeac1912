package models

// Staff specializes a User into a staff member. The id is the id of the
// underlying User record.
type Staff struct {
	Base
	MaritalStatus  string `json:"marital_status" gorm:"column:marital_status;size:50" validate:"omitempty,oneof=single married divorced widowed"`
	BankAcc        string `json:"bank_acc" gorm:"column:bank_acc;size:50" validate:"omitempty,numeric,len=10"`
	Department     string `json:"department" gorm:"column:department;size:50"`
	PensionFundAcc string `json:"pension_fund_acc" gorm:"column:pension_fund_acc;size:50" validate:"omitempty,numeric,len=10"`
	Role           string `json:"role" gorm:"column:role;size:50"`
	Status         string `json:"status" gorm:"column:status;size:50"`
}

// Kind returns the type discriminator
func (Staff) Kind() Kind { return KindStaff }

// TableName returns the backing table
func (Staff) TableName() string { return "staff" }

// Validate checks the staff invariants
func (s *Staff) Validate() error { return validateStruct(s) }

// Qualification is a staff qualification record.
type Qualification struct {
	Base
	Name    string `json:"name" gorm:"column:name;size:124" validate:"required"`
	StaffID string `json:"staff_id" gorm:"column:staff_id;size:50" validate:"required"`
}

// Kind returns the type discriminator
func (Qualification) Kind() Kind { return KindQualification }

// TableName returns the backing table
func (Qualification) TableName() string { return "qualifications" }

// Validate checks the qualification invariants
func (q *Qualification) Validate() error { return validateStruct(q) }
