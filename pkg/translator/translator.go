package translator

import (
	"embed"
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed translation/*.toml
var translationFS embed.FS

var Translator *i18n.Bundle

type Config struct {
	SupportedLanguages []string
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

func DefaultConfig() Config {
	return Config{SupportedLanguages: []string{LanguageEn, LanguageFr}}
}

// InitTranslator loads the bundled message files for every supported
// language. Missing files are logged and skipped; English is the fallback.
func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, lang := range cfg.SupportedLanguages {
		file := path.Join("translation", lang+".toml")
		if _, err := Translator.LoadMessageFileFS(translationFS, file); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", file), zap.Error(err))
		}
	}
}
