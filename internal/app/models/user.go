package models

// Gender is the enumerated gender field shared by User and Student.
type Gender string

// Gender values
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// User is the account record every person in the system starts from. Staff
// and Parent specialize a User by sharing its id.
type User struct {
	Base
	FirstName     string    `json:"first_name" gorm:"column:first_name;size:50" validate:"required"`
	LastName      string    `json:"last_name" gorm:"column:last_name;size:50" validate:"required"`
	OtherNames    string    `json:"other_names" gorm:"column:other_names;size:50"`
	Email         string    `json:"email" gorm:"column:email;size:124;uniqueIndex" validate:"required,email"`
	Password      string    `json:"password" gorm:"column:password;size:124" validate:"required"`
	Gender        Gender    `json:"gender" gorm:"column:gender;size:10" validate:"required,oneof=male female"`
	ContactNumber string    `json:"contact_number" gorm:"column:contact_number;size:50"`
	Address       string    `json:"address" gorm:"column:address;size:124"`
	DOB           Timestamp `json:"dob" gorm:"column:dob;type:timestamptz"`
	LastLoginDate Timestamp `json:"last_login_date" gorm:"column:last_login_date;type:timestamptz"`
}

// Kind returns the type discriminator
func (User) Kind() Kind { return KindUser }

// TableName returns the backing table
func (User) TableName() string { return "users" }

// Validate checks the user invariants
func (u *User) Validate() error { return validateStruct(u) }
