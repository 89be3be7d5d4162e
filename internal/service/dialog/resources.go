package dialog

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

const fallbackLocale = "en"

// Resources holds the locale-resolved reserved command words and the help
// text. It is built once by LoadResources and shared read-only across every
// dialog of a process; the interceptor never mutates it.
type Resources struct {
	Cancel      string `yaml:"cancel"`
	Help        string `yaml:"help"`
	Reset       string `yaml:"reset"`
	HelpMessage string `yaml:"help_message"`
}

// LoadResources resolves the reserved-word bundle for the given locale from
// the embedded locale files, falling back to English when the locale has no
// bundle of its own.
func LoadResources(locale string) (*Resources, error) {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if locale == "" {
		locale = fallbackLocale
	}

	data, err := localeFS.ReadFile(fmt.Sprintf("locales/%s.yaml", locale))
	if err != nil {
		if locale == fallbackLocale {
			return nil, fmt.Errorf("failed to read locale bundle %q: %w", locale, err)
		}
		return LoadResources(fallbackLocale)
	}

	res := &Resources{}
	if err := yaml.Unmarshal(data, res); err != nil {
		return nil, fmt.Errorf("failed to parse locale bundle %q: %w", locale, err)
	}

	if res.Cancel == "" || res.Help == "" || res.Reset == "" {
		return nil, fmt.Errorf("locale bundle %q is missing a reserved command word", locale)
	}
	return res, nil
}
