package models

// Parent specializes a User into a parent or guardian. The id is the id of
// the underlying User record.
type Parent struct {
	Base
	MaritalStatus string `json:"marital_status" gorm:"column:marital_status;size:50" validate:"omitempty,oneof=single married divorced widowed"`
	Occupation    string `json:"occupation" gorm:"column:occupation;size:124"`
	RelChild      string `json:"rel_child" gorm:"column:rel_child;size:50"`
	Partner       string `json:"partner" gorm:"column:partner;size:50"`
}

// Kind returns the type discriminator
func (Parent) Kind() Kind { return KindParent }

// TableName returns the backing table
func (Parent) TableName() string { return "parents" }

// Validate checks the parent invariants
func (p *Parent) Validate() error { return validateStruct(p) }
