package model

// ChatMessage is one turn of an assistant conversation. Role is "user" or
// "model"; the agent endpoint also accepts "assistant" and maps it to
// "model" before the Gemini call.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
