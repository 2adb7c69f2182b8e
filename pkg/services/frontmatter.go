package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"content-cms/pkg/models"

	"github.com/adrg/frontmatter"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoFrontMatter = errors.New("no front matter block")
	ErrUnterminated  = errors.New("unterminated front matter block")
)

// DetectFormat inspects the opening delimiter and verifies the block is
// terminated. Returns "yaml", "toml" or "json".
func DetectFormat(content []byte) (string, error) {
	str := string(content)
	switch {
	case strings.HasPrefix(str, "---\n") || strings.HasPrefix(str, "---\r\n"):
		if !hasClosingDelimiter(str, "---") {
			return "", ErrUnterminated
		}
		return "yaml", nil
	case strings.HasPrefix(str, "+++\n") || strings.HasPrefix(str, "+++\r\n"):
		if !hasClosingDelimiter(str, "+++") {
			return "", ErrUnterminated
		}
		return "toml", nil
	case strings.HasPrefix(strings.TrimSpace(str), "{"):
		return "json", nil
	}
	return "", ErrNoFrontMatter
}

func hasClosingDelimiter(str, delim string) bool {
	rest := str[strings.Index(str, "\n")+1:]
	for _, line := range strings.Split(rest, "\n") {
		if strings.TrimRight(line, "\r") == delim {
			return true
		}
	}
	return false
}

// ParseFrontMatter splits content into its metadata map, body and format.
func ParseFrontMatter(content []byte) (map[string]interface{}, string, string, error) {
	format, err := DetectFormat(content)
	if err != nil {
		return nil, "", "", err
	}

	var fm map[string]interface{}
	if format == "json" {
		// Hugo-style JSON metadata is the whole file, no body.
		if err := json.Unmarshal(content, &fm); err != nil {
			return nil, "", "", fmt.Errorf("parse json front matter: %w", err)
		}
		return sanitizeFrontMatter(fm), "", format, nil
	}

	rest, err := frontmatter.Parse(bytes.NewReader(content), &fm)
	if err != nil {
		return nil, "", "", fmt.Errorf("parse %s front matter: %w", format, err)
	}

	return sanitizeFrontMatter(fm), strings.TrimSpace(string(rest)), format, nil
}

// ParsePost parses a content file into a Post with both the raw metadata map
// and the typed meta projection.
func ParsePost(path string, content []byte) (models.Post, error) {
	fm, body, format, err := ParseFrontMatter(content)
	if err != nil {
		return models.Post{}, err
	}
	return models.Post{
		Path:        path,
		Meta:        MetaFromMap(fm),
		FrontMatter: fm,
		Body:        body,
		Format:      format,
	}, nil
}

// MetaFromMap projects the raw metadata map onto the typed PostMeta. Keys the
// schema does not claim end up in Custom.
func MetaFromMap(fm map[string]interface{}) models.PostMeta {
	meta := models.PostMeta{Custom: map[string]interface{}{}}
	for key, value := range fm {
		switch key {
		case "title":
			if s, ok := value.(string); ok {
				meta.Title = s
			}
		case "date":
			if t, ok := parseDateValue(value); ok {
				meta.Date = t
			}
		case "draft":
			if b, ok := value.(bool); ok {
				meta.Draft = b
			}
		case "tags":
			meta.Tags = toStringSlice(value)
		case "description":
			if s, ok := value.(string); ok {
				meta.Description = s
			}
		default:
			meta.Custom[key] = value
		}
	}
	return meta
}

// MetaToMap is the inverse of MetaFromMap. Zero-value optional fields are
// omitted so the serialized block stays close to what the author wrote.
func MetaToMap(meta models.PostMeta) map[string]interface{} {
	fm := make(map[string]interface{}, len(meta.Custom)+5)
	for key, value := range meta.Custom {
		fm[key] = value
	}
	fm["title"] = meta.Title
	if !meta.Date.IsZero() {
		fm["date"] = meta.Date.Format(time.RFC3339)
	}
	fm["draft"] = meta.Draft
	if len(meta.Tags) > 0 {
		fm["tags"] = append([]string(nil), meta.Tags...)
	}
	if meta.Description != "" {
		fm["description"] = meta.Description
	}
	return fm
}

func parseDateValue(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case string:
		for _, layout := range []string{
			time.RFC3339,
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05",
			"2006-01-02",
		} {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func toStringSlice(value interface{}) []string {
	switch v := value.(type) {
	case []string:
		return append([]string(nil), v...)
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			} else {
				out = append(out, fmt.Sprint(item))
			}
		}
		return out
	}
	return nil
}

// ConstructFileContent reassembles file bytes from a metadata map, body and
// front matter format.
func ConstructFileContent(fm map[string]interface{}, body string, format string) ([]byte, error) {
	normalizedFM := sanitizeFrontMatter(fm)
	if normalizedFM == nil {
		normalizedFM = map[string]interface{}{}
	}

	var buf bytes.Buffer
	switch format {
	case "yaml":
		buf.WriteString("---\n")
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(normalizedFM); err != nil {
			return nil, err
		}
		buf.WriteString("---\n")
	case "toml":
		buf.WriteString("+++\n")
		enc := toml.NewEncoder(&buf)
		if err := enc.Encode(normalizedFM); err != nil {
			return nil, err
		}
		buf.WriteString("+++\n")
	case "json":
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(normalizedFM); err != nil {
			return nil, err
		}
		if body == "" {
			return buf.Bytes(), nil
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// GenerateContentFromCollection builds a new file from a collection's field
// schema, applying overrides from the editor.
func GenerateContentFromCollection(collection models.Collection, overrides map[string]interface{}) ([]byte, error) {
	fm := make(map[string]interface{})
	var bodyContent string

	for _, field := range collection.Fields {
		// Check override first
		if val, ok := overrides[field.Name]; ok {
			if field.Name == "body" {
				if strVal, ok := val.(string); ok {
					bodyContent = strVal
				}
				continue
			}
			fm[field.Name] = val
			continue
		}

		if field.Name == "body" {
			if val, ok := field.Default.(string); ok {
				bodyContent = val
			}
			continue
		}

		if field.Default != nil {
			fm[field.Name] = field.Default
			continue
		}

		switch field.Widget {
		case "datetime":
			fm[field.Name] = time.Now().Format(time.RFC3339)
		case "boolean":
			fm[field.Name] = false
		case "list":
			fm[field.Name] = []string{}
		default:
			fm[field.Name] = ""
		}
	}

	format := "yaml"
	if collection.Extension == "toml" || collection.Extension == "" && strings.Contains(collection.Path, "toml") {
		format = "toml"
	}
	return ConstructFileContent(fm, bodyContent, format)
}

// NormalizeContent re-serializes a file in canonical form, applying collection
// defaults for missing fields. Content that does not parse is passed through
// with trimmed whitespace.
func NormalizeContent(content []byte, collection *models.Collection) []byte {
	if len(content) == 0 {
		return content
	}
	fm, body, format, err := ParseFrontMatter(content)
	if err != nil {
		return append(bytes.TrimSpace(content), '\n')
	}

	applyCollectionDefaultsInPlace(fm, collection)

	normalized, err := ConstructFileContent(fm, body, format)
	if err != nil {
		return append(bytes.TrimSpace(content), '\n')
	}
	return append(bytes.TrimSpace(normalized), '\n')
}

func sanitizeFrontMatter(fm map[string]interface{}) map[string]interface{} {
	if fm == nil {
		return nil
	}
	sanitized := make(map[string]interface{}, len(fm))
	for k, v := range fm {
		sanitized[k] = sanitizeFrontMatterValue(v)
	}
	return sanitized
}

func sanitizeFrontMatterValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return sanitizeFrontMatter(v)
	case map[interface{}]interface{}:
		normalized := make(map[string]interface{}, len(v))
		for key, inner := range v {
			normalized[fmt.Sprint(key)] = sanitizeFrontMatterValue(inner)
		}
		return normalized
	case []interface{}:
		slice := make([]interface{}, len(v))
		for i := range v {
			slice[i] = sanitizeFrontMatterValue(v[i])
		}
		return slice
	default:
		return v
	}
}

func applyCollectionDefaultsInPlace(fm map[string]interface{}, collection *models.Collection) {
	if fm == nil || collection == nil {
		return
	}
	for _, field := range collection.Fields {
		if field.Name == "body" {
			continue
		}
		if _, exists := fm[field.Name]; !exists && field.Default != nil {
			fm[field.Name] = field.Default
		}
	}
}

func normalizeOptionalListFields(fm map[string]interface{}, collection *models.Collection) {
	if fm == nil || collection == nil {
		return
	}
	for _, field := range collection.Fields {
		if field.Widget != "list" {
			continue
		}

		val, exists := fm[field.Name]
		if !exists || val == nil {
			fm[field.Name] = []interface{}{}
			continue
		}

		switch list := val.(type) {
		case []interface{}:
			fm[field.Name] = list
		case []string:
			normalized := make([]interface{}, len(list))
			for i := range list {
				normalized[i] = list[i]
			}
			fm[field.Name] = normalized
		default:
			fm[field.Name] = []interface{}{sanitizeFrontMatterValue(list)}
		}
	}
}

func canonicalizeFrontMatterForJSON(fm map[string]interface{}) map[string]interface{} {
	if fm == nil {
		return nil
	}
	canonical := make(map[string]interface{}, len(fm))
	for k, v := range fm {
		canonical[k] = canonicalizeValueForJSON(v)
	}
	return canonical
}

func canonicalizeValueForJSON(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return canonicalizeFrontMatterForJSON(v)
	case map[interface{}]interface{}:
		normalized := make(map[string]interface{}, len(v))
		for key, inner := range v {
			normalized[fmt.Sprint(key)] = canonicalizeValueForJSON(inner)
		}
		return normalized
	case []interface{}:
		slice := make([]interface{}, len(v))
		for i := range v {
			slice[i] = canonicalizeValueForJSON(v[i])
		}
		return slice
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	default:
		return v
	}
}

func normalizeLineEndings(input string) string {
	return strings.ReplaceAll(input, "\r\n", "\n")
}

// pruneEmptyFields drops empty strings and empty lists so structurally equal
// metadata compares equal regardless of which optional keys are spelled out.
func pruneEmptyFields(val interface{}) interface{} {
	switch v := val.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{})
		for k, elem := range v {
			if pruned := pruneEmptyFields(elem); pruned != nil {
				out[k] = pruned
			}
		}
		return out
	case []interface{}:
		if len(v) == 0 {
			return nil
		}
		return v
	case []string:
		if len(v) == 0 {
			return nil
		}
		return v
	case string:
		if v == "" {
			return nil
		}
		return v
	default:
		return v
	}
}

// ContentEquivalent reports whether two files carry the same metadata and
// body once both are reduced to canonical form. Formatting-only differences
// (key order, optional empty fields, line endings) compare equal.
func ContentEquivalent(a, b []byte) bool {
	fmA, bodyA, errA := canonicalizeContentForDiff(a, nil)
	fmB, bodyB, errB := canonicalizeContentForDiff(b, nil)
	if errA != nil || errB != nil {
		return errA != nil && errB != nil && bodyA == bodyB
	}
	return bytes.Equal(fmA, fmB) && bodyA == bodyB
}

func canonicalizeContentForDiff(content []byte, collection *models.Collection) ([]byte, string, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return nil, "", nil
	}

	fm, body, _, err := ParseFrontMatter(trimmed)
	if err != nil {
		return nil, strings.TrimSpace(normalizeLineEndings(string(trimmed))), err
	}

	applyCollectionDefaultsInPlace(fm, collection)
	normalizeOptionalListFields(fm, collection)

	var fmMap map[string]interface{}
	if m, ok := pruneEmptyFields(fm).(map[string]interface{}); ok {
		fmMap = m
	} else {
		fmMap = make(map[string]interface{})
	}

	canonicalFM, err := json.Marshal(canonicalizeFrontMatterForJSON(fmMap))
	if err != nil {
		return nil, "", err
	}

	normalizedBody := strings.TrimSpace(normalizeLineEndings(body))
	return canonicalFM, normalizedBody, nil
}
