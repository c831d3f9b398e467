package client

import (
	"context"
	"net/http/httptest"
	"testing"

	"taskboard/pkg/translator"
	"taskboard/routes"
	"taskboard/services"
	"taskboard/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAgainstServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	translator.InitTranslator(translator.DefaultConfig())

	router := routes.NewRouter(routes.Dependencies{
		DB:             testutils.SetupTestDB(t),
		TaskService:    services.NewTaskService(nil),
		UserService:    services.NewUserService(nil),
		AllowedOrigins: "*",
		Logger:         zap.NewNop(),
	})
	server := httptest.NewServer(router)
	defer server.Close()

	ctx := context.Background()
	c := New(server.URL + "/api/v1")

	user := c.CreateUser(ctx, UserDraft{Name: "Ada"})
	require.True(t, user.Success, user.Error)

	created := c.CreateTask(ctx, TaskDraft{Title: "Ship it", Assignee: user.Data.ID})
	require.True(t, created.Success, created.Error)
	require.NotNil(t, created.Data.Assignee)
	assert.Equal(t, "Ada", created.Data.Assignee.Name)

	toggled := created.Data
	toggled.IsChecked = true
	updated := c.UpdateTask(ctx, toggled)
	require.True(t, updated.Success, updated.Error)
	assert.True(t, updated.Data.IsChecked)
	assert.True(t, updated.Data.DateCreated.Equal(created.Data.DateCreated))

	invalid := c.CreateTask(ctx, TaskDraft{Title: ""})
	assert.False(t, invalid.Success)
	assert.Contains(t, invalid.Error, "title is required.")

	list := c.GetAllTasks(ctx)
	require.True(t, list.Success, list.Error)
	assert.Len(t, list.Data, 1)

	missing := c.GetTask(ctx, "not-an-id")
	assert.False(t, missing.Success)
	assert.Equal(t, "Invalid ID.", missing.Error)

	deleted := c.DeleteTask(ctx, created.Data.ID)
	require.True(t, deleted.Success)
	assert.Equal(t, int64(1), deleted.Data.DeletedCount)
}
