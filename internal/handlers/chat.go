package handlers

import (
	"net/http"

	"lecture-companion/internal/chat"
	"lecture-companion/internal/logger"
	"lecture-companion/internal/models"
)

type ChatHandler struct {
	sessions sessionManager
	chat     *chat.Service
	log      *logger.Logger
}

func NewChatHandler(sessions sessionManager, chatService *chat.Service, log *logger.Logger) *ChatHandler {
	return &ChatHandler{sessions: sessions, chat: chatService, log: log}
}

func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	s := loadSession(w, r, h.sessions, h.log)
	if s == nil {
		return
	}
	turns := s.Chat.Turns
	if turns == nil {
		turns = []chat.Turn{}
	}
	writeJSON(w, http.StatusOK, models.ChatHistoryResponse{Turns: turns})
}

func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s := loadSession(w, r, h.sessions, h.log)
	if s == nil {
		return
	}
	loc := s.Localization()

	if s.Lecture == nil {
		handleServiceError(w, r, errNoLecture, loc, h.log)
		return
	}

	reply, err := h.chat.Ask(r.Context(), &s.Chat, *s.Lecture, req.Message, loc)
	if err != nil {
		handleServiceError(w, r, err, loc, h.log)
		return
	}

	if !saveSession(w, r, h.sessions, s, h.log) {
		return
	}
	writeJSON(w, http.StatusOK, models.ChatResponse{Reply: reply, Turns: s.Chat.Turns})
}
