package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"unicode/utf8"

	"vibematch_server/models"
	"vibematch_server/services"

	"github.com/gorilla/mux"
	socketio "github.com/googollee/go-socket.io"
)

// ChatController handles the moderated match chat
type ChatController struct {
	ChatService *services.ChatService
	Socket      *socketio.Server // optional realtime relay
}

// NewChatController initializes the chat controller
func NewChatController(chatService *services.ChatService, socket *socketio.Server) *ChatController {
	return &ChatController{ChatService: chatService, Socket: socket}
}

// GetMessages fetches the visible messages of a match for a viewer
func (c *ChatController) GetMessages(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]
	viewerID := r.URL.Query().Get("userId")
	if viewerID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId query parameter is required"})
		return
	}

	messages, err := c.ChatService.GetMessages(r.Context(), matchID, viewerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// SendMessage validates length at the boundary, then delegates to the
// chat service and relays the stored message to the match room.
func (c *ChatController) SendMessage(w http.ResponseWriter, r *http.Request) {
	var request services.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}
	if utf8.RuneCountInString(request.Message) > models.MaxMessageLength {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Message exceeds maximum length"})
		return
	}

	message, err := c.ChatService.SendMessage(r.Context(), request)
	if err != nil {
		log.Printf("Failed to send message on match %s: %v", request.MatchID, err)
		writeError(w, err)
		return
	}

	if c.Socket != nil {
		c.Socket.BroadcastToRoom("/", message.MatchID, "newMessage", message)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":               message,
		"resonanceContribution": message.ResonanceContribution,
		"aiModerationScore":     message.AIModerationScore,
		"flagged":               message.IsHidden,
	})
}

// MarkMessagesAsRead stamps readAt on the viewer's incoming messages
func (c *ChatController) MarkMessagesAsRead(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID string `json:"matchId"`
		UserID  string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	if err := c.ChatService.MarkMessagesAsRead(r.Context(), request.MatchID, request.UserID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// ReportMessage files a safety report against a chat message
func (c *ChatController) ReportMessage(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ChatID     string `json:"chatId"`
		UserID     string `json:"userId"`
		ActionType string `json:"actionType"`
		Reason     string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	report, err := c.ChatService.ReportMessage(r.Context(), request.ChatID, request.UserID, request.ActionType, request.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
