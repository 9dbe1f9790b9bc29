// internal/i18n/i18n.go
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

type I18n struct {
	mu           sync.RWMutex
	translations map[string]map[string]string
	defaultLang  string
	matcher      language.Matcher
	tags         []language.Tag
}

const fallbackLang = "en"

var instance *I18n
var once sync.Once

// New loads the bundled locales. defaultLang answers requests in an
// unsupported language and must have a locale file of its own.
func New(defaultLang string) (*I18n, error) {
	if defaultLang == "" {
		defaultLang = fallbackLang
	}

	i := &I18n{
		translations: make(map[string]map[string]string),
		defaultLang:  defaultLang,
	}
	if err := i.LoadTranslations(localeFS, "locales"); err != nil {
		return nil, err
	}
	if _, ok := i.translations[defaultLang]; !ok {
		return nil, fmt.Errorf("no translations for default locale %q", defaultLang)
	}
	return i, nil
}

func Initialize(defaultLang string) error {
	var err error
	once.Do(func() {
		instance, err = New(defaultLang)
	})
	return err
}

// LoadTranslations reads every <lang>.json under dir. The default language
// is listed first so the matcher falls back to it.
func (i *I18n) LoadTranslations(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to list locales: %w", err)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	tags := []language.Tag{language.Make(i.defaultLang)}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		lang := strings.TrimSuffix(entry.Name(), ".json")
		filePath := dir + "/" + entry.Name()

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", filePath, err)
		}

		var translations map[string]string
		if err := json.Unmarshal(data, &translations); err != nil {
			return fmt.Errorf("failed to unmarshal locale file %s: %w", filePath, err)
		}

		i.translations[lang] = translations
		if lang != i.defaultLang {
			tags = append(tags, language.Make(lang))
		}
	}

	i.tags = tags
	i.matcher = language.NewMatcher(tags)
	return nil
}

// Match picks the best supported language for an Accept-Language header.
func (i *I18n) Match(acceptLanguage string) string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.matcher == nil {
		return i.defaultLang
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return i.defaultLang
	}
	_, index, confidence := i.matcher.Match(prefs...)
	if confidence == language.No {
		return i.defaultLang
	}
	base, _ := i.tags[index].Base()
	return base.String()
}

func (i *I18n) DefaultLanguage() string {
	return i.defaultLang
}

func (i *I18n) T(lang, key string, args ...interface{}) string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	// Try to get translation for requested language
	if translations, exists := i.translations[lang]; exists {
		if text, exists := translations[key]; exists {
			return format(text, args)
		}
	}

	// Fallback to default language
	if lang != i.defaultLang {
		if translations, exists := i.translations[i.defaultLang]; exists {
			if text, exists := translations[key]; exists {
				return format(text, args)
			}
		}
	}

	// Return key if no translation found
	return key
}

func format(text string, args []interface{}) string {
	if len(args) > 0 {
		return fmt.Sprintf(text, args...)
	}
	return text
}

// Global functions
func T(lang, key string, args ...interface{}) string {
	if instance != nil {
		return instance.T(lang, key, args...)
	}
	return key
}

func Match(acceptLanguage string) string {
	if instance != nil {
		return instance.Match(acceptLanguage)
	}
	return fallbackLang
}

func DefaultLanguage() string {
	if instance != nil {
		return instance.DefaultLanguage()
	}
	return fallbackLang
}

func GetSupportedLanguages() []string {
	if instance == nil {
		return []string{fallbackLang}
	}

	instance.mu.RLock()
	defer instance.mu.RUnlock()

	langs := make([]string, 0, len(instance.tags))
	for _, tag := range instance.tags {
		base, _ := tag.Base()
		langs = append(langs, base.String())
	}
	return langs
}
