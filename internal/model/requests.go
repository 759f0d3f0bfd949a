package model

type CompleteTaskRequest struct {
	TaskID string `json:"taskId"`
}

type BreakdownRequest struct {
	TaskContent       string `json:"taskContent"`
	ParentID          string `json:"parentId"`
	AdditionalDetails string `json:"additionalDetails"`
}

type ConnectRequest struct {
	Token string `json:"token"`
}

type AgentRequest struct {
	Prompt   string        `json:"prompt"`
	Messages []ChatMessage `json:"messages"`
}
