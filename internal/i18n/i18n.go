package i18n

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localesFS embed.FS

// Language is a supported interface language
type Language string

const (
	LangEnglish Language = "en"
	LangChinese Language = "zh"
)

// Languages lists every bundled language
var Languages = []Language{LangEnglish, LangChinese}

type translationFile struct {
	Messages map[string]string `yaml:"messages"`
}

// I18n resolves message keys for one active language, falling back to English
type I18n struct {
	lang         Language
	translations map[Language]map[string]string
}

// New loads the bundled translations and selects lang
func New(lang string) (*I18n, error) {
	i := &I18n{
		lang:         Language(lang),
		translations: make(map[Language]map[string]string),
	}

	for _, l := range Languages {
		if err := i.loadTranslations(l); err != nil {
			return nil, fmt.Errorf("load %s translations: %w", l, err)
		}
	}

	if _, ok := i.translations[i.lang]; !ok {
		return nil, fmt.Errorf("unsupported language: %q", lang)
	}

	return i, nil
}

func (i *I18n) loadTranslations(lang Language) error {
	data, err := localesFS.ReadFile("locales/" + string(lang) + ".yaml")
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	var tf translationFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return fmt.Errorf("unmarshal yaml: %w", err)
	}

	i.translations[lang] = tf.Messages
	return nil
}

// Lang returns the active language
func (i *I18n) Lang() Language {
	return i.lang
}

// Get retrieves a translated message, formatting it with args when given.
// Unknown keys are returned as is.
func (i *I18n) Get(key string, args ...interface{}) string {
	msg, ok := i.translations[i.lang][key]
	if !ok {
		msg, ok = i.translations[LangEnglish][key]
		if !ok {
			return key
		}
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	return msg
}
