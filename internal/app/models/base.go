// Package models defines the school-records entity model: uniquely
// identified, timestamped domain records plus the association records that
// carry many-to-many relationship edges. Entities reference each other by id
// string only, never by embedded pointer, so no instance is aliased across
// storage backends.
package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TimeLayout is the textual timestamp form used in persisted documents. It is
// second-precision on purpose so the representation is stable across
// processes and backends.
const TimeLayout = "2006-01-02 15:04:05"

// Timestamp is a second-precision wall clock value with a fixed textual
// representation. It marshals to TimeLayout in JSON and implements
// driver.Valuer/sql.Scanner for the relational backend.
type Timestamp struct {
	time.Time
}

// Now returns the current time truncated to the precision Timestamp keeps.
func Now() Timestamp {
	return Timestamp{time.Now().UTC().Truncate(time.Second)}
}

// NewTimestamp builds a Timestamp from a time.Time, truncating to seconds.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.UTC().Truncate(time.Second)}
}

// ParseTimestamp parses the fixed textual form.
func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return Timestamp{t.UTC()}, nil
}

// MarshalJSON implements json.Marshaler
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + t.UTC().Format(TimeLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		t.Time = time.Time{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid timestamp literal %s", s)
	}
	parsed, err := ParseTimestamp(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer
func (t Timestamp) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.UTC(), nil
}

// Scan implements sql.Scanner
func (t *Timestamp) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		*t = NewTimestamp(v)
		return nil
	case string:
		parsed, err := ParseTimestamp(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		parsed, err := ParseTimestamp(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Timestamp", src)
	}
}

// Kind discriminates entity types. Its value is the tag written into
// serialized documents and must stay stable once data has been persisted.
type Kind string

// String returns the kind as a plain string.
func (k Kind) String() string { return string(k) }

// Registered entity kinds
const (
	KindUser                     Kind = "User"
	KindStaff                    Kind = "Staff"
	KindParent                   Kind = "Parent"
	KindStudent                  Kind = "Student"
	KindClass                    Kind = "Class"
	KindCourse                   Kind = "Course"
	KindGrade                    Kind = "Grade"
	KindAttendance               Kind = "Attendance"
	KindFeedback                 Kind = "Feedback"
	KindQualification            Kind = "Qualification"
	KindClassCourseAssociation   Kind = "ClassCourseAssociation"
	KindStudentClassAssociation  Kind = "StudentClassAssociation"
	KindParentStudentAssociation Kind = "ParentStudentAssociation"
	KindStaffCourseAssociation   Kind = "StaffCourseAssociation"
)

// Entity is the contract every domain record satisfies.
type Entity interface {
	// EntityID returns the opaque unique id.
	EntityID() string
	// Kind returns the type discriminator.
	Kind() Kind
	// TableName returns the relational table backing this kind.
	TableName() string
	// Init fills in identity and audit timestamps where absent. Defaults are
	// computed per instance, never shared.
	Init()
	// Touch refreshes the updated_at audit timestamp.
	Touch()
	// Validate checks the entity invariants, returning a ValidationError
	// naming the field and rule on violation.
	Validate() error
}

// Base carries the shape shared by every entity: an opaque unique id and
// audit timestamps.
type Base struct {
	ID        string    `json:"id" gorm:"column:id;primaryKey;size:50" validate:"required"`
	CreatedAt Timestamp `json:"created_at" gorm:"column:created_at;type:timestamptz"`
	UpdatedAt Timestamp `json:"updated_at" gorm:"column:updated_at;type:timestamptz"`
}

// EntityID returns the opaque unique id
func (b *Base) EntityID() string {
	return b.ID
}

// Init generates an id if absent and stamps creation/update times.
func (b *Base) Init() {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
	}
}

// Touch refreshes the updated_at timestamp
func (b *Base) Touch() {
	b.UpdatedAt = Now()
}
