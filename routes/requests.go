package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"taskboard/middleware"
	"taskboard/models"
	"taskboard/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

// jsonFieldName makes validation errors report the JSON field name.
func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	}
	return name
}

// assigneeRef accepts the assignee as a bare id, a populated user object or
// null.
type assigneeRef string

func (a *assigneeRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}

	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*a = assigneeRef(id)
		return nil
	}

	var user struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &user); err != nil {
		return errors.New("assignee must be an id, a user object or null")
	}
	*a = assigneeRef(user.ID)
	return nil
}

type createTaskRequest struct {
	Title       string      `json:"title" binding:"required"`
	Description string      `json:"description"`
	IsChecked   *bool       `json:"isChecked"`
	Assignee    assigneeRef `json:"assignee"`
}

func (r createTaskRequest) toInput() models.TaskInput {
	return models.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		IsChecked:   r.IsChecked != nil && *r.IsChecked,
		Assignee:    string(r.Assignee),
	}
}

// updateTaskRequest is a full replacement of the writable fields.
// dateCreated may be echoed back by clients and is ignored.
type updateTaskRequest struct {
	ID          string      `json:"_id" binding:"required"`
	Title       string      `json:"title" binding:"required"`
	Description string      `json:"description"`
	IsChecked   *bool       `json:"isChecked" binding:"required"`
	Assignee    assigneeRef `json:"assignee"`
}

func (r updateTaskRequest) toInput() models.TaskInput {
	return models.TaskInput{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		IsChecked:   *r.IsChecked,
		Assignee:    string(r.Assignee),
	}
}

type createUserRequest struct {
	Name              string `json:"name" binding:"required"`
	ProfilePictureURL string `json:"profilePictureURL" binding:"omitempty,http_url"`
}

func (r createUserRequest) toInput() models.UserInput {
	return models.UserInput{
		Name:              r.Name,
		ProfilePictureURL: r.ProfilePictureURL,
	}
}

// bindJSON decodes and validates the body, writing a 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	lang := middleware.GetLang(c)
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			fields[fe.Field()] = fieldMessageKey(fe.Tag())
		}
		c.JSON(http.StatusBadRequest, apierrors.CreateValidationError(http.StatusBadRequest, fields, lang))
		return false
	}

	c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidPayload, lang))
	return false
}

func fieldMessageKey(tag string) string {
	switch tag {
	case "required":
		return apierrors.MsgFieldRequired
	case "url", "http_url":
		return apierrors.MsgFieldInvalidURL
	default:
		return apierrors.MsgFieldInvalid
	}
}
