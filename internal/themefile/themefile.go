// Package themefile reads and writes theme records as YAML, TOML or JSON
// documents.
package themefile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"deckstyle/internal/debug"
	apperrors "deckstyle/internal/errors"
	"deckstyle/internal/highlight"
	"deckstyle/internal/theme"
)

// Format is a theme document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Formats lists the supported encodings.
var Formats = []Format{FormatYAML, FormatTOML, FormatJSON}

// ParseFormat accepts a format name such as "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", apperrors.New(apperrors.CodeParseFailed, fmt.Sprintf("unsupported theme format %q", s), nil)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Document is the on-disk shape of a theme.
type Document struct {
	Name      string                        `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Font      string                        `json:"font,omitempty" yaml:"font,omitempty" toml:"font,omitempty"`
	Colors    map[string]string             `json:"colors,omitempty" yaml:"colors,omitempty" toml:"colors,omitempty"`
	Elements  map[string]theme.ElementStyle `json:"elements,omitempty" yaml:"elements,omitempty" toml:"elements,omitempty"`
	Highlight *Highlight                    `json:"highlight,omitempty" yaml:"highlight,omitempty" toml:"highlight,omitempty"`
}

// Highlight names a chroma style and the grammars to register.
type Highlight struct {
	Style     string   `json:"style,omitempty" yaml:"style,omitempty" toml:"style,omitempty"`
	Languages []string `json:"languages,omitempty" yaml:"languages,omitempty" toml:"languages,omitempty"`
}

// Decode parses a document. Unknown keys are rejected.
func Decode(data []byte, format Format) (Document, error) {
	format, err := ParseFormat(string(format))
	if err != nil {
		return Document{}, err
	}
	var doc Document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	}
	if err != nil {
		return Document{}, apperrors.New(apperrors.CodeParseFailed, fmt.Sprintf("parse %s theme", format), err)
	}
	return doc, nil
}

// Theme converts the document into a validated theme record. A highlight
// section is resolved into a fragment and merged over the custom fields.
func (d Document) Theme() (theme.Theme, error) {
	t := theme.Theme{Name: strings.TrimSpace(d.Name)}
	if strings.TrimSpace(d.Font) != "" {
		t.Font = theme.ParseFontStack(d.Font)
	}
	if len(d.Colors) > 0 {
		t.Colors = make(theme.Colors, len(d.Colors))
		for role, value := range d.Colors {
			t.Colors[theme.Role(role)] = value
		}
	}
	if len(d.Elements) > 0 {
		t.Elements = make(theme.Elements, len(d.Elements))
		for tag, style := range d.Elements {
			t.Elements[theme.Element(strings.ToLower(tag))] = style
		}
	}

	if d.Highlight != nil {
		frag, err := highlight.Fragment(d.Highlight.Style, d.Highlight.Languages...)
		if err != nil {
			return theme.Theme{}, err
		}
		t = theme.Merge(t, frag)
	}

	if err := theme.Validate(t); err != nil {
		return theme.Theme{}, err
	}
	return t, nil
}

// FromTheme converts a theme record into its document form.
func FromTheme(t theme.Theme) Document {
	doc := Document{Name: t.Name}
	if len(t.Font) > 0 {
		doc.Font = t.Font.CSS()
	}
	if len(t.Colors) > 0 {
		doc.Colors = make(map[string]string, len(t.Colors))
		for role, value := range t.Colors {
			doc.Colors[string(role)] = value
		}
	}
	if len(t.Elements) > 0 {
		doc.Elements = make(map[string]theme.ElementStyle, len(t.Elements))
		for el, style := range t.Elements {
			doc.Elements[string(el)] = style
		}
	}
	if t.CodeHighlightStyle != nil || len(t.CodeLanguages) > 0 {
		doc.Highlight = &Highlight{
			Style:     t.HighlightStyleName(),
			Languages: t.Languages(),
		}
	}
	return doc
}

// Parse decodes data and converts it into a theme record.
func Parse(data []byte, format Format) (theme.Theme, error) {
	doc, err := Decode(data, format)
	if err != nil {
		return theme.Theme{}, err
	}
	return doc.Theme()
}

// Load reads a theme file. A document without a name is named after the
// file, without its extension.
func Load(path string) (theme.Theme, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return theme.Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return theme.Theme{}, apperrors.New(apperrors.CodeNotFound, "theme file "+path, err)
		}
		return theme.Theme{}, fmt.Errorf("read theme file %s: %w", path, err)
	}

	doc, err := Decode(data, format)
	if err != nil {
		return theme.Theme{}, fmt.Errorf("%s: %w", path, err)
	}
	if strings.TrimSpace(doc.Name) == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	t, err := doc.Theme()
	if err != nil {
		return theme.Theme{}, fmt.Errorf("%s: %w", path, err)
	}
	debug.Logf("themefile: loaded %s from %s", t.Name, path)
	return t, nil
}

// LoadDir loads every supported file in dir, sorted by file name. Files with
// other extensions and subdirectories are skipped. A missing directory
// yields no themes.
func LoadDir(dir string) ([]theme.Theme, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read themes dir %s: %w", dir, err)
	}

	var themes []theme.Theme
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, err := FormatFromPath(entry.Name()); err != nil {
			continue
		}
		t, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		themes = append(themes, t)
	}
	return themes, nil
}

// RegisterDir loads dir and registers every theme in r. It returns the
// registered names in load order.
func RegisterDir(r *theme.Registry, dir string) ([]string, error) {
	themes, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(themes))
	for _, t := range themes {
		if err := r.Register(t); err != nil {
			return names, err
		}
		names = append(names, t.Name)
	}
	return names, nil
}

// Export encodes t in the given format.
func Export(t theme.Theme, format Format) ([]byte, error) {
	format, err := ParseFormat(string(format))
	if err != nil {
		return nil, err
	}
	doc := FromTheme(t)
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encode yaml theme: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml theme: %w", err)
		}
		return buf.Bytes(), nil
	case FormatTOML:
		data, err := toml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encode toml theme: %w", err)
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json theme: %w", err)
		}
		return append(data, '\n'), nil
	}
	return nil, apperrors.New(apperrors.CodeParseFailed, fmt.Sprintf("unsupported theme format %q", format), nil)
}

// Write exports t to path, picking the format from the extension.
func Write(path string, t theme.Theme) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Export(t, format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create theme dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
