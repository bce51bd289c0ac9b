package dsl

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	battleerr "github.com/KirkDiggler/pet-battle-effects/internal/errors"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a content file
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from a file extension
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	}
	return "", false
}

// Decode parses one content file. A file holds a single effect, an array of
// effects, or a pack object with effects and marks.
func Decode(format Format, data []byte) (*Pack, error) {
	switch format {
	case FormatJSON:
	case FormatYAML:
		converted, err := YAMLToJSON(data)
		if err != nil {
			return nil, err
		}
		data = converted
	default:
		return nil, battleerr.InvalidArgumentf("unsupported content format %q", format)
	}
	return decodeJSON(data)
}

// DecodeEffect parses a single JSON effect document
func DecodeEffect(data []byte) (*Effect, error) {
	var e Effect
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, battleerr.WrapWithCode(err, battleerr.CodeValidation, "invalid effect document")
	}
	return &e, nil
}

// YAMLToJSON re-encodes a YAML document as JSON so the union decoders only
// have to understand one encoding
func YAMLToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, battleerr.WrapWithCode(err, battleerr.CodeValidation, "invalid yaml")
	}

	out, err := json.Marshal(normalize(doc))
	if err != nil {
		return nil, battleerr.WrapWithCode(err, battleerr.CodeValidation, "yaml document is not representable as json")
	}
	return out, nil
}

// normalize turns non-string mapping keys into strings
func normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, item := range x {
			x[k] = normalize(item)
		}
		return x
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []any:
		for i, item := range x {
			x[i] = normalize(item)
		}
		return x
	}
	return v
}

func decodeJSON(data []byte) (*Pack, error) {
	switch {
	case isJSONArray(data):
		var list []Effect
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, battleerr.WrapWithCode(err, battleerr.CodeValidation, "invalid effect list")
		}
		return &Pack{Effects: list}, nil

	case isJSONObject(data):
		var probe struct {
			ID      string          `json:"id"`
			Effects json.RawMessage `json:"effects"`
			Marks   json.RawMessage `json:"marks"`
		}
		if err := json.Unmarshal(data, &probe); err != nil {
			return nil, battleerr.WrapWithCode(err, battleerr.CodeValidation, "invalid content document")
		}

		if probe.ID == "" && (probe.Effects != nil || probe.Marks != nil) {
			var pack Pack
			if err := json.Unmarshal(data, &pack); err != nil {
				return nil, battleerr.WrapWithCode(err, battleerr.CodeValidation, "invalid content pack")
			}
			return &pack, nil
		}

		e, err := DecodeEffect(data)
		if err != nil {
			return nil, err
		}
		return &Pack{Effects: []Effect{*e}}, nil
	}

	return nil, battleerr.Validationf("content must be an effect object, an array of effects or a pack")
}
