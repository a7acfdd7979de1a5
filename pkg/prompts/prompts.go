// Package prompts builds the chat messages sent to LLM providers.
package prompts

import "fmt"

// Message represents a single message in a chat-like conversation with the LLM.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GetAppGenSystemMessage returns the system prompt enforcing the file-list
// output contract. Every generation task must answer with a single JSON
// object holding a "files" array.
func GetAppGenSystemMessage() string {
	return "You are a web application generator. You produce complete, runnable source files for a small single-page web application.\n\n" +
		"OUTPUT CONTRACT:\n" +
		"- Respond with a single JSON object: {\"files\": [{\"path\": \"<relative path>\", \"content\": \"<full file contents>\"}, ...]}\n" +
		"- Every file's content MUST be the ENTIRE file from first line to last; never elide with placeholders.\n" +
		"- Paths are relative to the project root, forward slashes only.\n" +
		"- Shared state modules live under context/ and must export both the context object and its accessor hook (e.g. TodoContext and useTodoContext).\n" +
		"- Every symbol you import from a generated module must actually be exported by that module.\n" +
		"- Do not include commentary outside the JSON object.\n"
}

// BuildGenerationMessages constructs the messages for one generation task.
// area names the slice of the app this task is responsible for; priorPaths
// lists files already produced by earlier tasks so the model imports rather
// than regenerates them.
func BuildGenerationMessages(requirement, area string, priorPaths []string) []Message {
	messages := []Message{{Role: "system", Content: GetAppGenSystemMessage()}}

	user := fmt.Sprintf("Requirement: %s\n\nThis task covers: %s\n", requirement, area)
	if len(priorPaths) > 0 {
		user += "\nFiles already generated by earlier tasks (import from these, do not regenerate them):\n"
		for _, p := range priorPaths {
			user += fmt.Sprintf("  - %s\n", p)
		}
	}
	messages = append(messages, Message{Role: "user", Content: user})
	return messages
}
