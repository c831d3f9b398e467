package routes

import (
	"net/http"

	"taskboard/database"
	"taskboard/services"

	"github.com/gin-gonic/gin"
)

func RegisterTaskRoutes(group *gin.RouterGroup, db *database.Database, taskService services.TaskServiceInterface) {
	group.GET("/tasks", func(c *gin.Context) { GetAllTasks(c, db, taskService) })
	group.POST("/task", func(c *gin.Context) { CreateTask(c, db, taskService) })
	group.GET("/task/:id", func(c *gin.Context) { GetTaskById(c, db, taskService) })
	group.PUT("/task/:id", func(c *gin.Context) { UpdateTask(c, db, taskService) })
	group.DELETE("/task/:id", func(c *gin.Context) { DeleteTask(c, db, taskService) })
}

func GetAllTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	tasks, err := taskService.GetAllTasks(c.Request.Context(), db)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": tasks})
}

func CreateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	var req createTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	createdTask, err := taskService.CreateTask(c.Request.Context(), db, req.toInput())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createdTask)
}

func GetTaskById(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	task, err := taskService.GetTaskById(c.Request.Context(), db, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func UpdateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	var req updateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	updatedTask, err := taskService.UpdateTask(c.Request.Context(), db, c.Param("id"), req.toInput())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updatedTask)
}

func DeleteTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	result, err := taskService.DeleteTask(c.Request.Context(), db, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
