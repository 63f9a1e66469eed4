// internal/extraction/parse.go
package extraction

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// LLMs wrap JSON in markdown fences and prose despite instructions; the
// decoder tolerates both, then validates the object shape before
// unmarshalling.
const rawExtractionSchema = `{
	"type": "object",
	"properties": {
		"booking_reference": {"type": ["string", "null"]},
		"name":              {"type": ["string", "null"]},
		"phoneNumber":       {"type": ["string", "null"]},
		"tourDate":          {"type": ["string", "null"]},
		"tourTime":          {"type": ["string", "null"]},
		"totalPassengers":   {"type": ["integer", "number", "string", "null"]},
		"tour":              {"type": ["string", "null"]},
		"vehicleType":       {"type": ["string", "null"]},
		"address":           {"type": ["string", "null"]},
		"is_cancellation":   {"type": ["boolean", "null"]},
		"is_amendment":      {"type": ["boolean", "null"]}
	}
}`

var schemaLoader = gojsonschema.NewStringLoader(rawExtractionSchema)

// DecodeResponse turns raw oracle output into a RawExtraction. Any failure
// means the attempt produced nothing; the caller decides how to count it.
func DecodeResponse(text string) (*RawExtraction, error) {
	payload := isolateJSON(text)
	if payload == "" {
		return nil, fmt.Errorf("no JSON object in oracle response")
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(payload))
	if err != nil {
		return nil, fmt.Errorf("oracle response validation: %w", err)
	}
	if !result.Valid() {
		descs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			descs[i] = desc.String()
		}
		return nil, fmt.Errorf("oracle response failed schema: %v", descs)
	}

	var raw RawExtraction
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("unmarshal oracle response: %w", err)
	}
	return &raw, nil
}

// isolateJSON strips markdown code fences and surrounding prose, returning
// the outermost {...} or "" when none exists.
func isolateJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.Contains(text, "```") {
		for _, part := range strings.Split(text, "```") {
			trimmed := strings.TrimSpace(part)
			if strings.HasPrefix(trimmed, "json") {
				text = strings.TrimSpace(trimmed[4:])
				break
			}
			if strings.HasPrefix(trimmed, "{") {
				text = trimmed
				break
			}
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}
