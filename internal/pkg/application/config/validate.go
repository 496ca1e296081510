package config

import (
	"github.com/diwise/wikibase-dcatap/internal/pkg/domain"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v2"
)

const (
	APIEnabledKey   string = "api-enabled"
	DumpsEnabledKey string = "dumps-enabled"
)

var requiredKeys = []string{
	"directory", "uri", "themes", "keywords", "publisher", "contactPoint", "ld-info",
	"catalog-license", "catalog-homepage", "catalog-i18n", "catalog-issued",
}

// keys holding a list of strings rather than a single string
var listKeys = []string{"themes", "keywords"}

// sub-keys holding an object rather than a single string
var objectSubKeys = []string{"mediatype", "compression"}

var requiredSubKeys = map[string][]string{
	"publisher":    {"publisherType", "homepage", "name", "email"},
	"contactPoint": {"vcardType", "name", "email"},
	"ld-info":      {"accessURL", "mediatype", "license"},
	"api-info":     {"accessURL", "mediatype", "license"},
	"dump-info":    {"accessURL", "mediatype", "license", "compression"},
}

// Validate checks that every required, and every conditionally required, key
// is present and of the expected type. The boolean flags are checked first
// since the set of required keys depends on them. The first problem found is
// returned as a *domain.ConfigError.
func Validate(doc Document) error {
	apiEnabled, err := requireBool(doc, APIEnabledKey)
	if err != nil {
		return err
	}

	dumpsEnabled, err := requireBool(doc, DumpsEnabledKey)
	if err != nil {
		return err
	}

	keys := append([]string{}, requiredKeys...)
	if apiEnabled {
		keys = append(keys, "api-info")
	}
	if dumpsEnabled {
		keys = append(keys, "dump-info")
	}

	for _, key := range keys {
		if _, ok := doc.Lookup(key); !ok {
			return domain.MissingKey(key)
		}
	}

	for _, key := range keys {
		v, _ := doc.Lookup(key)

		subKeys, isBlock := requiredSubKeys[key]
		if !isBlock {
			if err := requireType(key, v, slices.Contains(listKeys, key)); err != nil {
				return err
			}
			continue
		}

		block, ok := v.(yaml.MapSlice)
		if !ok {
			return domain.MalformedKey(key, "an object")
		}

		for _, sub := range subKeys {
			sv, ok := lookup(block, sub)
			if !ok {
				return domain.MissingKey(key + "." + sub)
			}

			if slices.Contains(objectSubKeys, sub) {
				if _, ok := sv.(yaml.MapSlice); !ok {
					return domain.MalformedKey(key+"."+sub, "an object")
				}
				continue
			}

			if err := requireType(key+"."+sub, sv, false); err != nil {
				return err
			}
		}
	}

	return nil
}

func requireType(key string, v interface{}, list bool) error {
	if !list {
		if _, ok := v.(string); !ok {
			return domain.MalformedKey(key, "a string")
		}
		return nil
	}

	items, ok := v.([]interface{})
	if !ok {
		return domain.MalformedKey(key, "a list of strings")
	}
	for _, item := range items {
		if _, ok := item.(string); !ok {
			return domain.MalformedKey(key, "a list of strings")
		}
	}
	return nil
}

func requireBool(doc Document, key string) (bool, error) {
	v, ok := doc.Lookup(key)
	if !ok {
		return false, domain.MissingKey(key)
	}

	b, ok := v.(bool)
	if !ok {
		return false, domain.MalformedKey(key, "a boolean")
	}

	return b, nil
}
