package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/wikibase-dcatap/internal/pkg/domain"
	"golang.org/x/exp/slices"
)

const (
	CatalogTitleKey       string = "catalog-title"
	CatalogDescriptionKey string = "catalog-description"
)

// documentation pseudo languages never end up in the catalog
var reservedLanguages = []string{"qqq"}

type Language struct {
	Code     string
	Messages map[string]string
}

// Bundle is an ordered set of languages with their messages. The language code
// is assumed to be both the file name stem and the ISO 639-1 code.
type Bundle struct {
	languages []Language
}

func NewBundle(languages ...Language) Bundle {
	return Bundle{languages: languages}
}

func (b Bundle) Languages() []Language {
	return b.languages
}

func (b Bundle) Codes() []string {
	codes := make([]string, 0, len(b.languages))
	for _, l := range b.languages {
		codes = append(codes, l.Code)
	}
	return codes
}

func (l Language) Message(key string) (string, bool) {
	msg, ok := l.Messages[key]
	return msg, ok
}

// LoadDir reads every <lang>.json file directly inside dir, in directory
// listing order, skipping reserved documentation languages.
func LoadDir(ctx context.Context, dir string) (Bundle, error) {
	log := logging.GetFromContext(ctx)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Bundle{}, &domain.IOError{Op: "read translations directory", Path: dir, Err: err}
	}

	languages := []Language{}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}

		code := strings.TrimSuffix(e.Name(), ".json")
		if slices.Contains(reservedLanguages, code) {
			log.Debug().Msgf("skipping reserved language file %s", e.Name())
			continue
		}

		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return Bundle{}, &domain.IOError{Op: "read translation file", Path: path, Err: err}
		}

		lang, err := ParseLanguage(code, data)
		if err != nil {
			return Bundle{}, &domain.DataError{Source: path, Err: err}
		}

		languages = append(languages, lang)
	}

	log.Info().Strs("languages", codesOf(languages)).Msgf("loaded %d translation bundles from %s", len(languages), dir)

	return NewBundle(languages...), nil
}

// ParseLanguage decodes a single translation file. Values that are not plain
// strings, such as an "@metadata" block, are ignored.
func ParseLanguage(code string, data []byte) (Language, error) {
	raw := map[string]interface{}{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Language{}, fmt.Errorf("failed to unmarshal messages for %s: %w", code, err)
	}

	messages := make(map[string]string, len(raw))
	for key, value := range raw {
		if s, ok := value.(string); ok {
			messages[key] = s
		}
	}

	return Language{Code: code, Messages: messages}, nil
}

var errNotAnObject = errors.New("document is not a JSON object")

// Merge returns a copy of b where every language found in the remote document
// as "<lang>-title" and "<lang>-description" gets these as its catalog title
// and description. Languages that are not already in b are ignored.
func Merge(b Bundle, remote []byte) (Bundle, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(remote, &doc); err != nil {
		return Bundle{}, &domain.DataError{Source: "catalog translations", Err: fmt.Errorf("%w: %s", errNotAnObject, err.Error())}
	}
	if doc == nil {
		return Bundle{}, &domain.DataError{Source: "catalog translations", Err: errNotAnObject}
	}

	merged := make([]Language, 0, len(b.languages))

	for _, l := range b.languages {
		messages := make(map[string]string, len(l.Messages)+2)
		for k, v := range l.Messages {
			messages[k] = v
		}

		if title, ok := doc[l.Code+"-title"].(string); ok {
			messages[CatalogTitleKey] = title
		}
		if description, ok := doc[l.Code+"-description"].(string); ok {
			messages[CatalogDescriptionKey] = description
		}

		merged = append(merged, Language{Code: l.Code, Messages: messages})
	}

	return NewBundle(merged...), nil
}

func codesOf(languages []Language) []string {
	return NewBundle(languages...).Codes()
}
