package testutils

import (
	"context"

	"taskboard/database"
	"taskboard/models"

	"github.com/stretchr/testify/mock"
)

// MockTaskService mocks the TaskServiceInterface for testing
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) CreateTask(ctx context.Context, db *database.Database, input models.TaskInput) (models.Task, error) {
	args := m.Called(ctx, db, input)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskService) GetTaskById(ctx context.Context, db *database.Database, id string) (models.Task, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskService) GetAllTasks(ctx context.Context, db *database.Database) ([]models.Task, error) {
	args := m.Called(ctx, db)

	var tasks []models.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]models.Task)
	}
	return tasks, args.Error(1)
}

func (m *MockTaskService) UpdateTask(ctx context.Context, db *database.Database, id string, input models.TaskInput) (models.Task, error) {
	args := m.Called(ctx, db, id, input)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, db *database.Database, id string) (models.DeleteResult, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(models.DeleteResult), args.Error(1)
}

// MockUserService mocks the UserServiceInterface for testing
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, db *database.Database, input models.UserInput) (models.User, error) {
	args := m.Called(ctx, db, input)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserService) GetUserById(ctx context.Context, db *database.Database, id string) (models.User, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(models.User), args.Error(1)
}
