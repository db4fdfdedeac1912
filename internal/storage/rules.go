package storage

import (
	"github.com/mensah/schoolms/internal/app/models"
	"github.com/mensah/schoolms/internal/pkg/apperrors"
	"github.com/mensah/schoolms/internal/storage/codec"
)

// CascadeRule names one dependent kind and the field on it that holds the
// parent id. When the parent is deleted, every matching dependent goes with
// it, inside the same unit of work.
type CascadeRule struct {
	Child models.Kind
	Field string
}

// Cascades is the cascade rule table, executed by both backends on delete.
var Cascades = map[models.Kind][]CascadeRule{
	models.KindClass: {
		{Child: models.KindAttendance, Field: "class_id"},
		{Child: models.KindGrade, Field: "class_id"},
		{Child: models.KindStudentClassAssociation, Field: "class_id"},
		{Child: models.KindClassCourseAssociation, Field: "class_id"},
	},
	models.KindStudent: {
		{Child: models.KindAttendance, Field: "student_id"},
		{Child: models.KindGrade, Field: "student_id"},
		{Child: models.KindStudentClassAssociation, Field: "student_id"},
		{Child: models.KindParentStudentAssociation, Field: "student_id"},
	},
	models.KindStaff: {
		{Child: models.KindQualification, Field: "staff_id"},
		{Child: models.KindStaffCourseAssociation, Field: "staff_id"},
	},
}

// ReferenceRule names a field that must hold the id of an existing entity of
// the parent kind at creation time.
type ReferenceRule struct {
	Field  string
	Parent models.Kind
}

// References is the reference rule table, checked by both backends in New.
var References = map[models.Kind][]ReferenceRule{
	models.KindAttendance: {
		{Field: "class_id", Parent: models.KindClass},
		{Field: "student_id", Parent: models.KindStudent},
	},
	models.KindGrade: {
		{Field: "class_id", Parent: models.KindClass},
		{Field: "student_id", Parent: models.KindStudent},
		{Field: "course_id", Parent: models.KindCourse},
	},
}

// Getter is the read capability CheckReferences needs from a store.
type Getter interface {
	GetByID(kind models.Kind, id string) (models.Entity, bool)
}

// CheckReferences verifies every reference rule of the entity's kind against
// live data. Violations are deterministic ValidationErrors naming the field.
func CheckReferences(g Getter, e models.Entity) error {
	rules := References[e.Kind()]
	if len(rules) == 0 {
		return nil
	}

	doc, err := codec.Encode(e)
	if err != nil {
		return err
	}

	for _, rule := range rules {
		id, _ := doc[rule.Field].(string)
		if id == "" {
			return apperrors.NewValidationError(rule.Field, "required")
		}
		if _, ok := g.GetByID(rule.Parent, id); !ok {
			return apperrors.NewValidationError(rule.Field, "references missing "+rule.Parent.String())
		}
	}

	return nil
}
