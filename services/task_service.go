package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"taskboard/broker"
	"taskboard/database"
	"taskboard/models"
	"taskboard/pkg/apierrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaskServiceInterface interface {
	CreateTask(ctx context.Context, db *database.Database, input models.TaskInput) (models.Task, error)
	GetTaskById(ctx context.Context, db *database.Database, id string) (models.Task, error)
	GetAllTasks(ctx context.Context, db *database.Database) ([]models.Task, error)
	UpdateTask(ctx context.Context, db *database.Database, id string, input models.TaskInput) (models.Task, error)
	DeleteTask(ctx context.Context, db *database.Database, id string) (models.DeleteResult, error)
}

type TaskService struct {
	events EventPublisher
	now    func() time.Time
}

func NewTaskService(events EventPublisher) *TaskService {
	if events == nil {
		events = NoopPublisher{}
	}
	return &TaskService{
		events: events,
		now:    time.Now,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, db *database.Database, input models.TaskInput) (models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return models.Task{}, NewValidationError("title", apierrors.MsgFieldRequired)
	}

	assigneeID, err := resolveAssignee(ctx, db, input.Assignee)
	if err != nil {
		return models.Task{}, err
	}

	task := models.Task{
		ID:          uuid.New(),
		Title:       title,
		Description: input.Description,
		IsChecked:   input.IsChecked,
		DateCreated: s.now().UTC().Truncate(time.Millisecond),
		AssigneeID:  assigneeID,
	}

	if err := db.WithContext(ctx).Omit(clause.Associations).Create(&task).Error; err != nil {
		return models.Task{}, err
	}

	created, err := s.GetTaskById(ctx, db, task.ID.String())
	if err != nil {
		return models.Task{}, err
	}

	publishEvent(s.events, broker.TaskCreated, "task", created)
	return created, nil
}

func (s *TaskService) GetTaskById(ctx context.Context, db *database.Database, id string) (models.Task, error) {
	taskID, err := parseID(id)
	if err != nil {
		return models.Task{}, err
	}

	var task models.Task
	if err := db.WithContext(ctx).Preload("Assignee").First(&task, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}
	return task, nil
}

// GetAllTasks returns every task, newest first.
func (s *TaskService) GetAllTasks(ctx context.Context, db *database.Database) ([]models.Task, error) {
	tasks := []models.Task{}
	result := db.WithContext(ctx).Preload("Assignee").Order("date_created DESC").Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// UpdateTask replaces the writable fields of a task. The creation time is
// never touched.
func (s *TaskService) UpdateTask(ctx context.Context, db *database.Database, id string, input models.TaskInput) (models.Task, error) {
	taskID, err := parseID(id)
	if err != nil {
		return models.Task{}, err
	}

	bodyID, err := uuid.Parse(strings.TrimSpace(input.ID))
	if err != nil || bodyID != taskID {
		return models.Task{}, ErrIDMismatch
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return models.Task{}, NewValidationError("title", apierrors.MsgFieldRequired)
	}

	assigneeID, err := resolveAssignee(ctx, db, input.Assignee)
	if err != nil {
		return models.Task{}, err
	}

	result := db.WithContext(ctx).
		Model(&models.Task{ID: taskID}).
		Select("Title", "Description", "IsChecked", "AssigneeID").
		Updates(models.Task{
			Title:       title,
			Description: input.Description,
			IsChecked:   input.IsChecked,
			AssigneeID:  assigneeID,
		})
	if result.Error != nil {
		return models.Task{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Task{}, ErrTaskNotFound
	}

	updated, err := s.GetTaskById(ctx, db, taskID.String())
	if err != nil {
		return models.Task{}, err
	}

	publishEvent(s.events, broker.TaskUpdated, "task", updated)
	return updated, nil
}

// DeleteTask acknowledges the delete whether or not the task existed.
func (s *TaskService) DeleteTask(ctx context.Context, db *database.Database, id string) (models.DeleteResult, error) {
	taskID, err := parseID(id)
	if err != nil {
		return models.DeleteResult{}, err
	}

	result := db.WithContext(ctx).Delete(&models.Task{}, "id = ?", taskID)
	if result.Error != nil {
		return models.DeleteResult{}, result.Error
	}

	if result.RowsAffected > 0 {
		publishEvent(s.events, broker.TaskDeleted, "task", map[string]string{"_id": taskID.String()})
	}

	return models.DeleteResult{Acknowledged: true, DeletedCount: result.RowsAffected}, nil
}

// resolveAssignee turns an optional assignee id into a reference to an
// existing user. An empty id means no assignee.
func resolveAssignee(ctx context.Context, db *database.Database, raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	userID, err := parseID(raw)
	if err != nil {
		return nil, NewValidationError("assignee", apierrors.MsgFieldInvalidID)
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, NewValidationError("assignee", apierrors.MsgAssigneeNotFound)
	}
	return &userID, nil
}
