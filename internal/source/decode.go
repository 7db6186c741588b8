package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"reportapi/internal/model"
)

// ErrUnsupportedFormat is returned for record files that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported record file format")

// Supported reports whether name has a record file extension.
func Supported(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// ContentType returns the MIME type stored alongside a record file.
func ContentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return "application/json"
	case ".yaml", ".yml":
		return "application/yaml"
	}
	return "application/octet-stream"
}

// Decode parses one record file. A file holds either a single record object
// or a list of them. Values are kept as decoded; the aggregator decides what is
// usable text.
func Decode(name string, data []byte) ([]model.RawRecord, error) {
	var raw any
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse json %s: %w", name, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse yaml %s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}

	switch v := raw.(type) {
	case map[string]any:
		return []model.RawRecord{v}, nil
	case []any:
		out := make([]model.RawRecord, 0, len(v))
		for i, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%s: item %d is %T, want an object", name, i, item)
			}
			out = append(out, m)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s: top level is %T, want an object or a list of objects", name, raw)
	}
}
