package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AlexCourivaud/ShareTech2/controllers"
	"github.com/AlexCourivaud/ShareTech2/middleware"
	"github.com/AlexCourivaud/ShareTech2/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestID())

	userService := &services.UserService{DB: db}
	projectService := &services.ProjectService{DB: db}
	noteService := &services.NoteService{DB: db}
	taskService := &services.TaskService{DB: db}
	commentService := &services.CommentService{DB: db}
	tagService := &services.TagService{DB: db}

	authController := controllers.AuthController{Users: userService}
	userController := controllers.UserController{Users: userService}
	projectController := controllers.ProjectController{Projects: projectService}
	noteController := controllers.NoteController{Notes: noteService, Comments: commentService}
	taskController := controllers.TaskController{Tasks: taskService}
	commentController := controllers.CommentController{Comments: commentService}
	tagController := controllers.TagController{Tags: tagService}

	r.POST("/register", authController.Register)
	r.POST("/login", authController.Login)

	auth := r.Group("/", middleware.AuthMiddleware(db))

	auth.GET("/users", userController.GetUsers)
	auth.PUT("/users/:id/role", userController.UpdateRole)
	auth.DELETE("/users/:id", userController.DeleteUser)

	auth.POST("/projects", projectController.Create)
	auth.GET("/projects", projectController.List)
	auth.GET("/projects/:id", projectController.Get)
	auth.PUT("/projects/:id", projectController.Update)
	auth.DELETE("/projects/:id", projectController.Delete)
	auth.POST("/projects/:id/terminate", projectController.Terminate)
	auth.POST("/projects/:id/members", projectController.AddMember)
	auth.DELETE("/projects/:id/members/:userID", projectController.RemoveMember)

	auth.POST("/notes", noteController.Create)
	auth.GET("/notes", noteController.List)
	auth.GET("/notes/:id", noteController.Get)
	auth.PUT("/notes/:id", noteController.Update)
	auth.DELETE("/notes/:id", noteController.Delete)
	auth.POST("/notes/:id/tags", noteController.AttachTags)
	auth.PUT("/notes/:id/tags", noteController.ReplaceTags)
	auth.GET("/notes/:id/comments", noteController.ListComments)
	auth.POST("/notes/:id/comments", noteController.CreateComment)

	auth.GET("/tags", tagController.List)
	auth.GET("/tags/:id", tagController.Get)
	auth.POST("/tags", tagController.Create)
	auth.DELETE("/tags/:id", tagController.Delete)

	auth.POST("/tasks", taskController.Create)
	auth.GET("/tasks", taskController.List)
	auth.GET("/tasks/my", taskController.MyTasks)
	auth.GET("/tasks/:id", taskController.Get)
	auth.PUT("/tasks/:id", taskController.Update)
	auth.DELETE("/tasks/:id", taskController.Delete)
	auth.POST("/tasks/:id/assign", taskController.Assign)
	auth.POST("/tasks/:id/unassign", taskController.Unassign)
	auth.POST("/tasks/:id/status", taskController.ChangeStatus)
	auth.POST("/tasks/:id/tags", taskController.AttachTags)
	auth.PUT("/tasks/:id/tags", taskController.ReplaceTags)

	auth.PUT("/comments/:id", commentController.Update)
	auth.DELETE("/comments/:id", commentController.Delete)
	auth.GET("/comments/:id/replies", commentController.ListReplies)
	auth.POST("/comments/:id/replies", commentController.CreateReply)

	return r
}
