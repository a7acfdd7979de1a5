// Package parser turns raw LLM task output into a normalized file set.
//
// Task output is untrusted: models wrap JSON in markdown fences, nest file
// content inside objects, or drop fields. The parser coerces whatever it can
// into well-formed files and fails only when the payload is not structured
// data at all.
package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"webwright/pkg/types"
	"webwright/pkg/utils"
)

// ErrInvalidResponse is returned when the task output is not valid JSON or
// lacks a files array. It is fatal for the task, not the session.
var ErrInvalidResponse = errors.New("invalid task response")

// Anomaly records a recoverable deviation in task output that the parser
// repaired, such as content arriving as a nested object. Anomalies are
// returned to the caller for logging; they never fail the task.
type Anomaly struct {
	Path   string
	Detail string
}

type fileEntry struct {
	Path    string          `json:"path"`
	Content json.RawMessage `json:"content"`
}

type taskEnvelope struct {
	Files *[]fileEntry `json:"files"`
}

// ParseTaskResponse parses one LLM task's raw output into a FileSet.
// Non-string content is deterministically serialized into a string and
// reported as an anomaly. Returns ErrInvalidResponse when the outer payload
// is not valid JSON or the files field is absent or not an array.
func ParseTaskResponse(raw string) (*types.FileSet, []Anomaly, error) {
	jsonStr, err := utils.ExtractJSONFromLLMResponse(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	var envelope taskEnvelope
	if err := json.Unmarshal([]byte(jsonStr), &envelope); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if envelope.Files == nil {
		return nil, nil, fmt.Errorf("%w: missing files array", ErrInvalidResponse)
	}

	set := types.NewFileSet()
	var anomalies []Anomaly

	for i, entry := range *envelope.Files {
		if entry.Path == "" {
			anomalies = append(anomalies, Anomaly{
				Detail: fmt.Sprintf("files[%d] has no path, entry dropped", i),
			})
			continue
		}

		content, coerced, err := decodeContent(entry.Content)
		if err != nil {
			anomalies = append(anomalies, Anomaly{
				Path:   entry.Path,
				Detail: fmt.Sprintf("unreadable content (%v), entry dropped", err),
			})
			continue
		}
		if coerced {
			anomalies = append(anomalies, Anomaly{
				Path:   entry.Path,
				Detail: "content was not a string, serialized deterministically",
			})
		}

		set.Put(types.GeneratedFile{Path: entry.Path, Content: content})
	}

	return set, anomalies, nil
}

// decodeContent extracts a file's content as a string, coercing non-string
// values. The coerced form is stable: encoding/json sorts object keys, and
// two-space indentation is fixed.
func decodeContent(raw json.RawMessage) (content string, coerced bool, err error) {
	if len(raw) == 0 {
		return "", false, nil
	}
	// A bare null unmarshals into a string as a no-op; catch it up front so
	// it goes through coercion like every other non-string value.
	if string(bytes.TrimSpace(raw)) == "null" {
		return CoerceContent(nil), true, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, false, nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false, err
	}
	return CoerceContent(v), true, nil
}

// CoerceContent serializes a non-string content value into a stable string
// form. Fixers reuse this when re-normalizing content downstream of the
// parser.
func CoerceContent(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		// Unmarshalable values came from json.Unmarshal output, so this is
		// unreachable in practice; fall back to fmt rather than lose the file.
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
