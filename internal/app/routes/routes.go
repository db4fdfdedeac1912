package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mensah/schoolms/internal/app/controllers"
	"github.com/mensah/schoolms/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrls *controllers.Controllers,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", ctrls.Auth.Register)
		auth.POST("/login", ctrls.Auth.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/profile", ctrls.User.GetProfile)

		users := authenticated.Group("/users")
		{
			users.GET("", ctrls.User.ListUsers)
			users.GET("/:id", ctrls.User.GetUser)
			users.PATCH("/:id", ctrls.User.UpdateUser)
			users.DELETE("/:id", ctrls.User.DeleteUser)
			users.GET("/:id/feedbacks", ctrls.Feedback.ListForUser)
		}

		students := authenticated.Group("/students")
		{
			students.POST("", ctrls.Student.CreateStudent)
			students.GET("", ctrls.Student.ListStudents)
			students.GET("/:id", ctrls.Student.GetStudent)
			students.PATCH("/:id", ctrls.Student.UpdateStudent)
			students.DELETE("/:id", ctrls.Student.DeleteStudent)
			students.GET("/:id/grades", ctrls.Gradebook.StudentGrades)
			students.GET("/:id/report", ctrls.Gradebook.StudentReport)
			students.GET("/:id/attendance", ctrls.Attendance.ForStudent)
			students.GET("/:id/attendance/summary", ctrls.Attendance.Summary)
		}

		parents := authenticated.Group("/parents")
		{
			parents.GET("/:id/children", ctrls.Student.ListChildren)
		}

		classes := authenticated.Group("/classes")
		{
			classes.POST("", ctrls.Class.CreateClass)
			classes.GET("", ctrls.Class.ListClasses)
			classes.GET("/:id", ctrls.Class.GetClass)
			classes.PATCH("/:id", ctrls.Class.UpdateClass)
			classes.DELETE("/:id", ctrls.Class.DeleteClass)
			classes.POST("/:id/students", ctrls.Class.EnrollStudent)
			classes.DELETE("/:id/students/:studentId", ctrls.Class.UnenrollStudent)
			classes.GET("/:id/students", ctrls.Class.Students)
			classes.POST("/:id/courses", ctrls.Class.AssignCourse)
			classes.GET("/:id/courses", ctrls.Class.Courses)
			classes.GET("/:id/attendance", ctrls.Attendance.ForClass)
		}

		courses := authenticated.Group("/courses")
		{
			courses.POST("", ctrls.Course.CreateCourse)
			courses.GET("", ctrls.Course.ListCourses)
			courses.GET("/:id", ctrls.Course.GetCourse)
			courses.PATCH("/:id", ctrls.Course.UpdateCourse)
			courses.DELETE("/:id", ctrls.Course.DeleteCourse)
			courses.GET("/:id/classes", ctrls.Course.Classes)
		}

		grades := authenticated.Group("/grades")
		{
			grades.POST("", ctrls.Gradebook.RecordGrade)
			grades.GET("/:id", ctrls.Gradebook.GetGrade)
			grades.PATCH("/:id", ctrls.Gradebook.UpdateGrade)
			grades.DELETE("/:id", ctrls.Gradebook.DeleteGrade)
		}

		attendance := authenticated.Group("/attendance")
		{
			attendance.POST("", ctrls.Attendance.Mark)
			attendance.PATCH("/:id", ctrls.Attendance.Update)
			attendance.DELETE("/:id", ctrls.Attendance.Delete)
		}

		feedbacks := authenticated.Group("/feedbacks")
		{
			feedbacks.POST("", ctrls.Feedback.Create)
			feedbacks.GET("", ctrls.Feedback.List)
			feedbacks.DELETE("/:id", ctrls.Feedback.Delete)
		}
	}
}
