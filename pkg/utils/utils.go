package utils

import (
	"fmt"
	"strings"
	"time"
)

// GetTimestamp returns the current time formatted for log and report output.
func GetTimestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

// TruncateString truncates a string to maxLength, appending "..." when cut.
func TruncateString(s string, maxLength int) string {
	if maxLength < 0 {
		return ""
	}
	if len(s) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return s[:maxLength]
	}
	return s[:maxLength-3] + "..."
}

// ExtractJSONFromLLMResponse extracts JSON from an LLM response that may
// contain markdown formatting. LLMs routinely wrap their JSON payload in
// code fences or surround it with prose; this recovers the payload without
// failing the task.
func ExtractJSONFromLLMResponse(response string) (string, error) {
	// First try to extract from markdown code blocks
	if strings.Contains(response, "```json") {
		parts := strings.Split(response, "```json")
		if len(parts) > 1 {
			jsonPart := parts[1]
			end := strings.Index(jsonPart, "```")
			if end > 0 {
				jsonStr := strings.TrimSpace(jsonPart[:end])
				if jsonStr != "" {
					return jsonStr, nil
				}
			}
		}
	}

	// No markdown blocks: look for outermost object or array boundaries
	response = strings.TrimSpace(response)

	startBrace := strings.Index(response, "{")
	startBracket := strings.Index(response, "[")

	start := -1
	isArray := false

	if startBrace >= 0 && (startBracket < 0 || startBrace < startBracket) {
		start = startBrace
	} else if startBracket >= 0 {
		start = startBracket
		isArray = true
	}

	if start == -1 {
		return "", fmt.Errorf("no JSON object or array found (no opening brace or bracket)")
	}

	var end int
	if isArray {
		end = strings.LastIndex(response, "]")
	} else {
		end = strings.LastIndex(response, "}")
	}

	if end == -1 || end <= start {
		return "", fmt.Errorf("no matching closing brace/bracket found")
	}

	jsonStr := strings.TrimSpace(response[start : end+1])
	if jsonStr == "" {
		return "", fmt.Errorf("extracted JSON is empty")
	}

	return jsonStr, nil
}
