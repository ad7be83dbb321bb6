// Package i18n loads the YAML message catalogs and resolves user-facing
// strings against the request's Accept-Language header. English is the
// fallback for unknown languages and missing keys.
package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// fallback is used when negotiation fails or a key is missing.
var fallback = language.English //nolint: gochecknoglobals

// Catalog holds the loaded message catalogs keyed by language.
type Catalog struct {
	messages map[language.Tag]map[string]string
	matcher  language.Matcher
}

// Load parses every *.yml file under dir in src. The file name (without
// extension) is the language tag, e.g. en.yml, ar.yml.
func Load(src fs.FS, dir string) (*Catalog, error) {
	entries, err := fs.ReadDir(src, dir)
	if err != nil {
		return nil, fmt.Errorf("could not read catalog dir %q: %w", dir, err)
	}

	c := &Catalog{messages: make(map[language.Tag]map[string]string)}

	var tags []language.Tag
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yml") {
			continue
		}

		tag, err := language.Parse(strings.TrimSuffix(entry.Name(), ".yml"))
		if err != nil {
			return nil, fmt.Errorf("invalid language tag in %q: %w", entry.Name(), err)
		}

		data, err := fs.ReadFile(src, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("could not read catalog %q: %w", entry.Name(), err)
		}

		messages := make(map[string]string)
		if err := yaml.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("could not parse catalog %q: %w", entry.Name(), err)
		}

		c.messages[tag] = messages
		tags = append(tags, tag)
	}

	if _, ok := c.messages[fallback]; !ok {
		return nil, fmt.Errorf("catalog for fallback language %q is missing", fallback)
	}

	// fallback first so it wins when nothing matches
	ordered := []language.Tag{fallback}
	for _, tag := range tags {
		if tag != fallback {
			ordered = append(ordered, tag)
		}
	}
	c.matcher = language.NewMatcher(ordered)

	return c, nil
}

// Languages returns the loaded language tags.
func (c *Catalog) Languages() []language.Tag {
	out := make([]language.Tag, 0, len(c.messages))
	for tag := range c.messages {
		out = append(out, tag)
	}

	return out
}

// T resolves key in the best matching language for the given Accept-Language
// header. Missing keys fall back to English, then to the key itself.
func (c *Catalog) T(acceptLanguage, key string) string {
	tag := fallback
	if acceptLanguage != "" {
		if wanted, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil {
			tag, _, _ = c.matcher.Match(wanted...)
			// the matcher may return a narrowed variant, map back to a base we loaded
			if _, ok := c.messages[tag]; !ok {
				base, _ := tag.Base()
				if parsed, err := language.Parse(base.String()); err == nil {
					tag = parsed
				}
			}
		}
	}

	if msg, ok := c.messages[tag][key]; ok {
		return msg
	}
	if msg, ok := c.messages[fallback][key]; ok {
		return msg
	}

	return key
}

// Tf resolves key like T and applies printf-style arguments.
func (c *Catalog) Tf(acceptLanguage, key string, args ...any) string {
	return fmt.Sprintf(c.T(acceptLanguage, key), args...)
}
