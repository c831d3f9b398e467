package routes

import (
	"net/http"

	"taskboard/database"
	"taskboard/services"

	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(group *gin.RouterGroup, db *database.Database, userService services.UserServiceInterface) {
	group.POST("/user", func(c *gin.Context) { CreateUser(c, db, userService) })
	group.GET("/user/:id", func(c *gin.Context) { GetUserById(c, db, userService) })
}

func CreateUser(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	var req createUserRequest
	if !bindJSON(c, &req) {
		return
	}

	createdUser, err := userService.CreateUser(c.Request.Context(), db, req.toInput())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createdUser)
}

func GetUserById(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	user, err := userService.GetUserById(c.Request.Context(), db, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
