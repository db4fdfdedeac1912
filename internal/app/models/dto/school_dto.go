package dto

// CreateStudentRequest represents a student admission request
type CreateStudentRequest struct {
	FirstName          string `json:"first_name" binding:"required"`
	LastName           string `json:"last_name" binding:"required"`
	OtherNames         string `json:"other_names"`
	Gender             string `json:"gender" binding:"required,oneof=male female"`
	ParentID           string `json:"parent_id" binding:"required"`
	DOB                string `json:"dob"`
	ExpectedGraduation string `json:"expected_graduation" binding:"required"`
	AdmissionDate      string `json:"admission_date" binding:"required"`
}

// CreateClassRequest represents a class creation request
type CreateClassRequest struct {
	ClassName          string `json:"class_name" binding:"required"`
	HeadClassTeacher   string `json:"head_class_teacher" binding:"required"`
	AssistClassTeacher string `json:"assist_class_teacher"`
	AcademicYear       string `json:"academic_year" binding:"required"`
}

// CreateCourseRequest represents a course creation request
type CreateCourseRequest struct {
	CourseName        string `json:"course_name" binding:"required"`
	CourseDescription string `json:"course_description" binding:"required"`
	TeacherID         string `json:"teacher_id" binding:"required"`
}

// EnrollStudentRequest enrolls a student into a class
type EnrollStudentRequest struct {
	StudentID string `json:"student_id" binding:"required"`
}

// AssignCourseRequest assigns a course to a class
type AssignCourseRequest struct {
	CourseID string `json:"course_id" binding:"required"`
}

// RecordGradeRequest represents a gradebook entry
type RecordGradeRequest struct {
	Grade        int    `json:"grade" binding:"min=0,max=100"`
	OutOf        int    `json:"out_of" binding:"min=0,max=100,gtefield=Grade"`
	GradeDesc    string `json:"grade_desc" binding:"required,oneof=homework classwork classtest assessment exam dictation quiz"`
	Term         string `json:"term"`
	AcademicYear string `json:"academic_year"`
	CourseID     string `json:"course_id" binding:"required"`
	ClassID      string `json:"class_id" binding:"required"`
	StudentID    string `json:"student_id" binding:"required"`
}

// MarkAttendanceRequest represents one attendance mark
type MarkAttendanceRequest struct {
	Status       int    `json:"status" binding:"min=0,max=1"`
	Term         string `json:"term"`
	AcademicYear string `json:"academic_year"`
	Date         string `json:"date" binding:"required"`
	ClassID      string `json:"class_id" binding:"required"`
	StudentID    string `json:"student_id" binding:"required"`
}

// CreateFeedbackRequest represents a feedback submission
type CreateFeedbackRequest struct {
	Content string `json:"content" binding:"required"`
}

// UpdateFieldsRequest carries a partial update as field name to value
type UpdateFieldsRequest map[string]interface{}
