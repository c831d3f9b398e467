package services

import (
	"context"
	"errors"
	"strings"

	"taskboard/broker"
	"taskboard/database"
	"taskboard/models"
	"taskboard/pkg/apierrors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserServiceInterface interface {
	CreateUser(ctx context.Context, db *database.Database, input models.UserInput) (models.User, error)
	GetUserById(ctx context.Context, db *database.Database, id string) (models.User, error)
}

type UserService struct {
	events   EventPublisher
	validate *validator.Validate
}

func NewUserService(events EventPublisher) *UserService {
	if events == nil {
		events = NoopPublisher{}
	}
	return &UserService{
		events:   events,
		validate: validator.New(),
	}
}

func (s *UserService) CreateUser(ctx context.Context, db *database.Database, input models.UserInput) (models.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.User{}, NewValidationError("name", apierrors.MsgFieldRequired)
	}
	if err := s.validate.Var(input.ProfilePictureURL, "omitempty,http_url"); err != nil {
		return models.User{}, NewValidationError("profilePictureURL", apierrors.MsgFieldInvalidURL)
	}

	user := models.User{
		ID:                uuid.New(),
		Name:              name,
		ProfilePictureURL: input.ProfilePictureURL,
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return models.User{}, err
	}

	publishEvent(s.events, broker.UserCreated, "user", user)
	return user, nil
}

func (s *UserService) GetUserById(ctx context.Context, db *database.Database, id string) (models.User, error) {
	userID, err := parseID(id)
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	if err := db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
