package routes

import (
	"vibematch_server/controllers"
	"vibematch_server/services"

	"github.com/gorilla/mux"
	socketio "github.com/googollee/go-socket.io"
)

// RegisterChatRoutes sets up routes for the moderated match chat and the
// safety-report endpoint
func RegisterChatRoutes(r *mux.Router, chatService *services.ChatService, socket *socketio.Server) {
	controller := controllers.NewChatController(chatService, socket)

	chatRouter := r.PathPrefix("/api/match-chat").Subrouter()
	chatRouter.HandleFunc("", controller.SendMessage).Methods("POST")
	chatRouter.HandleFunc("/mark-read", controller.MarkMessagesAsRead).Methods("POST")
	chatRouter.HandleFunc("/{matchId}", controller.GetMessages).Methods("GET")

	r.HandleFunc("/api/chat-safety-report", controller.ReportMessage).Methods("POST")
}
