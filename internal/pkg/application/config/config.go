package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/diwise/wikibase-dcatap/internal/pkg/domain"
	"gopkg.in/yaml.v2"
)

const DefaultFilePrefix string = "*"

var errNotAnObject = errors.New("configuration is not a JSON object")

// Document is a parsed configuration. Object keys, at every level, are kept in
// the order they appear in the file.
type Document struct {
	keys yaml.MapSlice
	raw  []byte
}

func Parse(data []byte) (Document, error) {
	return parse("configuration", data)
}

func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, &domain.IOError{Op: "read config file", Path: path, Err: err}
	}

	return parse(path, data)
}

func parse(source string, data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	v, err := decodeValue(dec)
	if err != nil {
		return Document{}, &domain.DataError{Source: source, Err: fmt.Errorf("failed to parse configuration: %w", err)}
	}

	keys, ok := v.(yaml.MapSlice)
	if !ok {
		return Document{}, &domain.DataError{Source: source, Err: errNotAnObject}
	}

	if _, err := dec.Token(); err != io.EOF {
		return Document{}, &domain.DataError{Source: source, Err: errors.New("unexpected data after the configuration object")}
	}

	return Document{keys: keys, raw: data}, nil
}

// decodeValue reads the next JSON value from dec. Objects become ordered
// yaml.MapSlices where a repeated key replaces the earlier value in place.
func decodeValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		m := yaml.MapSlice{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}

			key, _ := keyTok.(string)
			value, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}

			m = set(m, key, value)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return m, nil
	case '[':
		list := []interface{}{}
		for dec.More() {
			value, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			list = append(list, value)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return list, nil
	}

	return nil, fmt.Errorf("unexpected %s", delim)
}

func set(m yaml.MapSlice, key string, value interface{}) yaml.MapSlice {
	for i := range m {
		if m[i].Key == key {
			m[i].Value = value
			return m
		}
	}
	return append(m, yaml.MapItem{Key: key, Value: value})
}

func (d Document) Lookup(key string) (interface{}, bool) {
	return lookup(d.keys, key)
}

func lookup(m yaml.MapSlice, key string) (interface{}, bool) {
	for _, item := range m {
		if k, ok := item.Key.(string); ok && k == key {
			return item.Value, item.Value != nil
		}
	}
	return nil, false
}

type Config struct {
	Directory       string       `json:"directory"`
	URI             string       `json:"uri"`
	Themes          []string     `json:"themes"`
	Keywords        []string     `json:"keywords"`
	Publisher       Publisher    `json:"publisher"`
	ContactPoint    ContactPoint `json:"contactPoint"`
	LDInfo          *Info        `json:"ld-info"`
	APIInfo         *Info        `json:"api-info"`
	DumpInfo        *Info        `json:"dump-info"`
	CatalogLicense  string       `json:"catalog-license"`
	CatalogHomepage string       `json:"catalog-homepage"`
	CatalogI18n     string       `json:"catalog-i18n"`
	CatalogIssued   string       `json:"catalog-issued"`
	APIEnabled      bool         `json:"api-enabled"`
	DumpsEnabled    bool         `json:"dumps-enabled"`

	infos map[domain.Kind]*Info
}

type Publisher struct {
	PublisherType string `json:"publisherType"`
	Homepage      string `json:"homepage"`
	Name          string `json:"name"`
	Email         string `json:"email"`
}

type ContactPoint struct {
	VCardType string `json:"vcardType"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// Info describes how one kind of distribution is accessed
type Info struct {
	AccessURL string `json:"accessURL"`
	License   string `json:"license"`

	MediaTypes   []MediaType   `json:"-"`
	Compressions []Compression `json:"-"`
}

// MediaType is one configured format. Key is the name used in file names and
// identifiers, Name is the name shown to humans.
type MediaType struct {
	Key         string
	Name        string
	ContentType string
	FilePrefix  string
}

type Compression struct {
	Name        string
	ContentType string
}

// Info returns the access configuration for a distribution kind, or nil if
// that kind is not configured
func (c *Config) Info(k domain.Kind) *Info {
	return c.infos[k]
}

// LiveKinds returns the distribution kinds that make up the live dataset
func (c *Config) LiveKinds() []domain.Kind {
	kinds := []domain.Kind{domain.KindLD}
	if c.APIEnabled {
		kinds = append(kinds, domain.KindAPI)
	}
	return kinds
}

// Decode turns a validated document into a Config. Validate must have
// succeeded on the document before calling Decode.
func Decode(doc Document) (*Config, error) {
	cfg := &Config{}
	if err := json.Unmarshal(doc.raw, cfg); err != nil {
		return nil, &domain.DataError{Source: "configuration", Err: fmt.Errorf("failed to decode configuration: %w", err)}
	}

	blocks := []struct {
		key     string
		kind    domain.Kind
		info    *Info
		enabled bool
	}{
		{"ld-info", domain.KindLD, cfg.LDInfo, true},
		{"api-info", domain.KindAPI, cfg.APIInfo, cfg.APIEnabled},
		{"dump-info", domain.KindDump, cfg.DumpInfo, cfg.DumpsEnabled},
	}

	cfg.infos = map[domain.Kind]*Info{}

	for _, b := range blocks {
		if !b.enabled || b.info == nil {
			continue
		}

		v, _ := doc.Lookup(b.key)
		block, _ := v.(yaml.MapSlice)

		mediaTypes, err := decodeMediaTypes(b.key, objectValue(block, "mediatype"))
		if err != nil {
			return nil, err
		}
		b.info.MediaTypes = mediaTypes

		if b.kind == domain.KindDump {
			compressions, err := decodeCompressions(b.key, objectValue(block, "compression"))
			if err != nil {
				return nil, err
			}
			b.info.Compressions = compressions
		}

		cfg.infos[b.kind] = b.info
	}

	return cfg, nil
}

func decodeMediaTypes(block string, raw yaml.MapSlice) ([]MediaType, error) {
	mediaTypes := make([]MediaType, 0, len(raw))

	for _, item := range raw {
		key := fmt.Sprint(item.Key)
		path := block + ".mediatype." + key

		mt := MediaType{Key: key, Name: key, FilePrefix: DefaultFilePrefix}

		switch v := item.Value.(type) {
		case string:
			mt.ContentType = v
		case yaml.MapSlice:
			if s, ok := stringValue(v, "mediatype"); ok {
				mt.ContentType = s
			}
			if s, ok := stringValue(v, "format"); ok {
				mt.Name = s
			}
			if s, ok := stringValue(v, "prefix"); ok {
				mt.FilePrefix = s
			}
		default:
			return nil, domain.MalformedKey(path, "a content type or an object")
		}

		if mt.ContentType == "" {
			return nil, domain.MissingKey(path + ".mediatype")
		}

		mediaTypes = append(mediaTypes, mt)
	}

	return mediaTypes, nil
}

func decodeCompressions(block string, raw yaml.MapSlice) ([]Compression, error) {
	compressions := make([]Compression, 0, len(raw))

	for _, item := range raw {
		name := fmt.Sprint(item.Key)
		contentType, ok := item.Value.(string)
		if !ok && item.Value != nil {
			return nil, domain.MalformedKey(block+".compression."+name, "a content type")
		}
		compressions = append(compressions, Compression{Name: name, ContentType: contentType})
	}

	return compressions, nil
}

func objectValue(m yaml.MapSlice, key string) yaml.MapSlice {
	v, _ := lookup(m, key)
	obj, _ := v.(yaml.MapSlice)
	return obj
}

func stringValue(m yaml.MapSlice, key string) (string, bool) {
	v, ok := lookup(m, key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
