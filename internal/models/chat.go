package models

import "lecture-companion/internal/chat"

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the reply from the AI chat.
type ChatResponse struct {
	Reply string      `json:"reply"`
	Turns []chat.Turn `json:"turns"`
}

type ChatHistoryResponse struct {
	Turns []chat.Turn `json:"turns"`
}
