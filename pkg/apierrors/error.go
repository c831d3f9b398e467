package apierrors

import (
	"fmt"

	"taskboard/pkg/translator"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
)

// JsonErr represents the JSON structure for apierrors.
type JsonErr struct {
	ErrDetails Err `json:"error"`
}

// Err represents the error with a code, a message and optional per-field
// messages.
type Err struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e JsonErr) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.ErrDetails.Code, e.ErrDetails.Message)
}

// CreateError generates a JsonErr with a translated message.
func CreateError(code int, msgKey string, lang string) JsonErr {
	message := GetTransErrorMsg(msgKey, lang)
	return JsonErr{ErrDetails: Err{Code: code, Message: message}}
}

// CreateValidationError translates each field's message key, passing the
// field name to the template.
func CreateValidationError(code int, fields map[string]string, lang string) JsonErr {
	jsonErr := CreateError(code, MsgValidationFailed, lang)
	jsonErr.ErrDetails.Fields = make(map[string]string, len(fields))
	for field, msgKey := range fields {
		jsonErr.ErrDetails.Fields[field] = GetTransMsg(msgKey, lang, map[string]string{"Field": field})
	}
	return jsonErr
}

func GetTransErrorMsg(msgKey string, lang string) string {
	return GetTransMsg(msgKey, lang, nil)
}

// GetTransMsg retrieves the translated message, falling back to the key.
func GetTransMsg(msgKey string, lang string, data interface{}) string {
	if translator.Translator == nil {
		return msgKey
	}
	l := i18n.NewLocalizer(translator.Translator, lang, translator.LanguageEn)
	msg, err := l.Localize(&i18n.LocalizeConfig{
		MessageID:    msgKey,
		TemplateData: data,
	})
	if err != nil {
		zap.L().Warn("translation not found", zap.String("lang", lang), zap.String("message_id", msgKey), zap.Error(err))
		return msgKey
	}
	return msg
}
