package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskboard/broker"
	"taskboard/database"
	"taskboard/models"
	"taskboard/pkg/apierrors"
	"taskboard/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type TaskServiceSuite struct {
	suite.Suite

	ctx       context.Context
	db        *database.Database
	events    *testutils.MockPublisher
	service   *TaskService
	users     *UserService
	clockTime time.Time
}

func (s *TaskServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutils.SetupTestDB(s.T())
	s.events = &testutils.MockPublisher{}
	s.service = NewTaskService(s.events)
	s.clockTime = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	s.service.now = func() time.Time {
		s.clockTime = s.clockTime.Add(time.Minute)
		return s.clockTime
	}
	s.users = NewUserService(nil)
}

func TestTaskServiceSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceSuite))
}

func (s *TaskServiceSuite) createUser(name string) models.User {
	user, err := s.users.CreateUser(s.ctx, s.db, models.UserInput{Name: name})
	s.Require().NoError(err)
	return user
}

func (s *TaskServiceSuite) countTasks() int64 {
	var count int64
	s.Require().NoError(s.db.DB.Model(&models.Task{}).Count(&count).Error)
	return count
}

func (s *TaskServiceSuite) TestCreateTask_EmptyTitleIsRejected() {
	for _, title := range []string{"", "   "} {
		_, err := s.service.CreateTask(s.ctx, s.db, models.TaskInput{Title: title})

		var validationErr *ValidationError
		s.Require().ErrorAs(err, &validationErr)
		s.ErrorIs(err, ErrValidation)
		s.Equal(apierrors.MsgFieldRequired, validationErr.Fields["title"])
	}
	s.Equal(int64(0), s.countTasks())
	s.Empty(s.events.Events())
}

func (s *TaskServiceSuite) TestCreateTask_WithoutAssignee() {
	created, err := s.service.CreateTask(s.ctx, s.db, models.TaskInput{Title: "Buy milk", Description: "2 litres"})
	s.Require().NoError(err)

	s.NotEqual(uuid.Nil, created.ID)
	s.Equal("Buy milk", created.Title)
	s.Equal("2 litres", created.Description)
	s.False(created.IsChecked)
	s.True(created.DateCreated.Equal(time.Date(2026, 5, 4, 12, 1, 0, 0, time.UTC)))

	fetched, err := s.service.GetTaskById(s.ctx, s.db, created.ID.String())
	s.Require().NoError(err)
	s.Nil(fetched.Assignee)
	s.Nil(fetched.AssigneeID)

	s.Equal([]string{string(broker.TaskCreated)}, s.events.EventTypes())
	s.Equal("task", s.events.Events()[0].Entity)
}

func (s *TaskServiceSuite) TestCreateTask_TrimsTitle() {
	created, err := s.service.CreateTask(s.ctx, s.db, models.TaskInput{Title: "  Call mom  "})
	s.Require().NoError(err)
	s.Equal("Call mom", created.Title)
}

func (s *TaskServiceSuite) TestCreateTask_WithAssigneePopulatesUser() {
	user := s.createUser("Ada")

	created, err := s.service.CreateTask(s.ctx, s.db, models.TaskInput{
		Title:     "Write compiler",
		IsChecked: true,
		Assignee:  user.ID.String(),
	})
	s.Require().NoError(err)
	s.True(created.IsChecked)
	s.Require().NotNil(created.Assignee)
	s.Equal(user.ID, created.Assignee.ID)
	s.Equal("Ada", created.Assignee.Name)
}

func (s *TaskServiceSuite) TestCreateTask_AssigneeErrors() {
	_, err := s.service.CreateTask(s.ctx, s.db, models.TaskInput{Title: "x", Assignee: "not-an-id"})
	var validationErr *ValidationError
	s.Require().ErrorAs(err, &validationErr)
	s.Equal(apierrors.MsgFieldInvalidID, validationErr.Fields["assignee"])

	_, err = s.service.CreateTask(s.ctx, s.db, models.TaskInput{Title: "x", Assignee: uuid.NewString()})
	s.Require().ErrorAs(err, &validationErr)
	s.Equal(apierrors.MsgAssigneeNotFound, validationErr.Fields["assignee"])

	s.Equal(int64(0), s.countTasks())
}

func (s *TaskServiceSuite) TestGetTaskById_Errors() {
	_, err := s.service.GetTaskById(s.ctx, s.db, "123")
	s.ErrorIs(err, ErrInvalidID)

	_, err = s.service.GetTaskById(s.ctx, s.db, uuid.NewString())
	s.ErrorIs(err, ErrTaskNotFound)
	s.ErrorIs(err, ErrNotFound)
}

func (s *TaskServiceSuite) TestGetAllTasks_NewestFirst() {
	tasks, err := s.service.GetAllTasks(s.ctx, s.db)
	s.Require().NoError(err)
	s.NotNil(tasks)
	s.Empty(tasks)

	for _, title := range []string{"first", "second", "third"} {
		_, err := s.service.CreateTask(s.ctx, s.db, models.TaskInput{Title: title})
		s.Require().NoError(err)
	}

	tasks, err = s.service.GetAllTasks(s.ctx, s.db)
	s.Require().NoError(err)
	s.Require().Len(tasks, 3)
	s.Equal("third", tasks[0].Title)
	s.Equal("second", tasks[1].Title)
	s.Equal("first", tasks[2].Title)
}

func (s *TaskServiceSuite) TestUpdateTask_ToggleRoundTrips() {
	created, err := s.service.CreateTask(s.ctx, s.db, models.TaskInput{Title: "Laundry"})
	s.Require().NoError(err)

	updated, err := s.service.UpdateTask(s.ctx, s.db, created.ID.String(), models.TaskInput{
		ID:        created.ID.String(),
		Title:     created.Title,
		IsChecked: true,
	})
	s.Require().NoError(err)
	s.True(updated.IsChecked)
	s.True(updated.DateCreated.Equal(created.DateCreated))

	fetched, err := s.service.GetTaskById(s.ctx, s.db, created.ID.String())
	s.Require().NoError(err)
	s.True(fetched.IsChecked)
	s.True(fetched.DateCreated.Equal(created.DateCreated))

	s.Equal([]string{string(broker.TaskCreated), string(broker.TaskUpdated)}, s.events.EventTypes())
}

func (s *TaskServiceSuite) TestUpdateTask_ReplacesAllFields() {
	user := s.createUser("Grace")
	created, err := s.service.CreateTask(s.ctx, s.db, models.TaskInput{
		Title:       "Draft",
		Description: "old",
		Assignee:    user.ID.String(),
	})
	s.Require().NoError(err)

	updated, err := s.service.UpdateTask(s.ctx, s.db, created.ID.String(), models.TaskInput{
		ID:    created.ID.String(),
		Title: "Final",
	})
	s.Require().NoError(err)
	s.Equal("Final", updated.Title)
	s.Empty(updated.Description)
	s.Nil(updated.Assignee)
	s.Nil(updated.AssigneeID)
}

func (s *TaskServiceSuite) TestUpdateTask_IDMismatchLeavesTaskUnchanged() {
	created, err := s.service.CreateTask(s.ctx, s.db, models.TaskInput{Title: "Original"})
	s.Require().NoError(err)

	for _, bodyID := range []string{uuid.NewString(), "", "garbage"} {
		_, err = s.service.UpdateTask(s.ctx, s.db, created.ID.String(), models.TaskInput{
			ID:        bodyID,
			Title:     "Hijacked",
			IsChecked: true,
		})
		s.ErrorIs(err, ErrIDMismatch)
	}

	fetched, err := s.service.GetTaskById(s.ctx, s.db, created.ID.String())
	s.Require().NoError(err)
	s.Equal("Original", fetched.Title)
	s.False(fetched.IsChecked)
}

func (s *TaskServiceSuite) TestUpdateTask_NotFound() {
	id := uuid.NewString()
	_, err := s.service.UpdateTask(s.ctx, s.db, id, models.TaskInput{ID: id, Title: "Ghost"})
	s.ErrorIs(err, ErrTaskNotFound)
	s.Equal(int64(0), s.countTasks())
}

func (s *TaskServiceSuite) TestUpdateTask_EmptyTitle() {
	created, err := s.service.CreateTask(s.ctx, s.db, models.TaskInput{Title: "Keep"})
	s.Require().NoError(err)

	_, err = s.service.UpdateTask(s.ctx, s.db, created.ID.String(), models.TaskInput{ID: created.ID.String()})
	s.ErrorIs(err, ErrValidation)
}

func (s *TaskServiceSuite) TestDeleteTask_AcknowledgesRegardless() {
	created, err := s.service.CreateTask(s.ctx, s.db, models.TaskInput{Title: "Temp"})
	s.Require().NoError(err)

	result, err := s.service.DeleteTask(s.ctx, s.db, created.ID.String())
	s.Require().NoError(err)
	s.Equal(models.DeleteResult{Acknowledged: true, DeletedCount: 1}, result)

	result, err = s.service.DeleteTask(s.ctx, s.db, created.ID.String())
	s.Require().NoError(err)
	s.Equal(models.DeleteResult{Acknowledged: true, DeletedCount: 0}, result)

	_, err = s.service.GetTaskById(s.ctx, s.db, created.ID.String())
	s.ErrorIs(err, ErrTaskNotFound)

	s.Equal([]string{string(broker.TaskCreated), string(broker.TaskDeleted)}, s.events.EventTypes())
}

func (s *TaskServiceSuite) TestDeleteTask_InvalidID() {
	_, err := s.service.DeleteTask(s.ctx, s.db, "nope")
	s.ErrorIs(err, ErrInvalidID)
}

func (s *TaskServiceSuite) TestDanglingAssigneeResolvesToNull() {
	user := s.createUser("Temp")
	created, err := s.service.CreateTask(s.ctx, s.db, models.TaskInput{Title: "Orphan", Assignee: user.ID.String()})
	s.Require().NoError(err)

	s.Require().NoError(s.db.DB.Delete(&models.User{}, "id = ?", user.ID).Error)

	fetched, err := s.service.GetTaskById(s.ctx, s.db, created.ID.String())
	s.Require().NoError(err)
	s.Nil(fetched.Assignee)
}

func TestGetAllTasks_DatabaseError(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	mock.ExpectQuery(`SELECT (.+) FROM "tasks"`).WillReturnError(errors.New("connection reset"))

	taskService := NewTaskService(nil)
	tasks, err := taskService.GetAllTasks(context.Background(), db)
	assert.Error(t, err)
	assert.Nil(t, tasks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTaskById_DatabaseErrorIsNotNotFound(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	id := uuid.New()
	mock.ExpectQuery(`SELECT (.+) FROM "tasks" WHERE id = \$1`).
		WillReturnError(errors.New("connection reset"))

	taskService := NewTaskService(nil)
	_, err := taskService.GetTaskById(context.Background(), db, id.String())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTask_AssigneeLookupErrorPersistsNothing(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).WillReturnError(errors.New("timeout"))

	events := &testutils.MockPublisher{}
	taskService := NewTaskService(events)
	_, err := taskService.CreateTask(context.Background(), db, models.TaskInput{Title: "x", Assignee: uuid.NewString()})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Empty(t, events.Events())
	assert.NoError(t, mock.ExpectationsWereMet())
}
