package models

// registry maps every type discriminator to a constructor for a fresh,
// zero-valued instance of that kind.
var registry = map[Kind]func() Entity{
	KindUser:                     func() Entity { return &User{} },
	KindStaff:                    func() Entity { return &Staff{} },
	KindParent:                   func() Entity { return &Parent{} },
	KindStudent:                  func() Entity { return &Student{} },
	KindClass:                    func() Entity { return &Class{} },
	KindCourse:                   func() Entity { return &Course{} },
	KindGrade:                    func() Entity { return &Grade{} },
	KindAttendance:               func() Entity { return &Attendance{} },
	KindFeedback:                 func() Entity { return &Feedback{} },
	KindQualification:            func() Entity { return &Qualification{} },
	KindClassCourseAssociation:   func() Entity { return &ClassCourseAssociation{} },
	KindStudentClassAssociation:  func() Entity { return &StudentClassAssociation{} },
	KindParentStudentAssociation: func() Entity { return &ParentStudentAssociation{} },
	KindStaffCourseAssociation:   func() Entity { return &StaffCourseAssociation{} },
}

// kindOrder fixes the iteration order for operations that span all kinds, so
// schema creation and full scans are deterministic.
var kindOrder = []Kind{
	KindUser,
	KindStaff,
	KindParent,
	KindStudent,
	KindClass,
	KindCourse,
	KindGrade,
	KindAttendance,
	KindFeedback,
	KindQualification,
	KindClassCourseAssociation,
	KindStudentClassAssociation,
	KindParentStudentAssociation,
	KindStaffCourseAssociation,
}

// Kinds returns every registered kind in a fixed order.
func Kinds() []Kind {
	out := make([]Kind, len(kindOrder))
	copy(out, kindOrder)
	return out
}

// NewOf returns a fresh instance of the given kind, or false if the kind is
// not registered.
func NewOf(kind Kind) (Entity, bool) {
	factory, ok := registry[kind]
	if !ok {
		return nil, false
	}
	return factory(), true
}

// Registered reports whether kind is a known discriminator.
func Registered(kind Kind) bool {
	_, ok := registry[kind]
	return ok
}
