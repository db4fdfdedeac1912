package models

// Feedback is a free-form note left by a user.
type Feedback struct {
	Base
	Content string `json:"content" gorm:"column:content;size:255" validate:"required"`
	UserID  string `json:"user_id" gorm:"column:user_id;size:50" validate:"required"`
}

// Kind returns the type discriminator
func (Feedback) Kind() Kind { return KindFeedback }

// TableName returns the backing table
func (Feedback) TableName() string { return "feedbacks" }

// Validate checks the feedback invariants
func (f *Feedback) Validate() error { return validateStruct(f) }
