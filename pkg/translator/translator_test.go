package translator

import (
	"testing"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTranslator_LoadsBundledLanguages(t *testing.T) {
	InitTranslator(DefaultConfig())
	require.NotNil(t, Translator)

	en := i18n.NewLocalizer(Translator, LanguageEn)
	msg, err := en.Localize(&i18n.LocalizeConfig{MessageID: "taskNotFound"})
	require.NoError(t, err)
	assert.Equal(t, "Task not found.", msg)

	fr := i18n.NewLocalizer(Translator, LanguageFr)
	msg, err = fr.Localize(&i18n.LocalizeConfig{MessageID: "taskNotFound"})
	require.NoError(t, err)
	assert.Equal(t, "Tâche introuvable.", msg)
}

func TestInitTranslator_TemplateData(t *testing.T) {
	InitTranslator(DefaultConfig())

	l := i18n.NewLocalizer(Translator, LanguageEn)
	msg, err := l.Localize(&i18n.LocalizeConfig{
		MessageID:    "fieldRequired",
		TemplateData: map[string]string{"Field": "title"},
	})
	require.NoError(t, err)
	assert.Equal(t, "title is required.", msg)
}

func TestInitTranslator_UnknownLanguageIsSkipped(t *testing.T) {
	assert.NotPanics(t, func() {
		InitTranslator(Config{SupportedLanguages: []string{"xx", LanguageEn}})
	})

	l := i18n.NewLocalizer(Translator, "xx", LanguageEn)
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: "userNotFound"})
	require.NoError(t, err)
	assert.Equal(t, "User not found.", msg)
}
