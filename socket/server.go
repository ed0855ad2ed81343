package socket

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
)

// NewSocketServer returns a Socket.IO server that rooms connections by
// matchId so new chat messages can be pushed to both participants.
func NewSocketServer() *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(s socketio.Conn) error {
		log.Println("Socket connected:", s.ID())
		return nil
	})

	server.OnEvent("/", "join", func(s socketio.Conn, matchID string) {
		if matchID == "" {
			log.Println("Invalid matchId in join request")
			return
		}
		s.Join(matchID)
		log.Printf("Socket %s joined match room %s", s.ID(), matchID)
	})

	server.OnEvent("/", "leave", func(s socketio.Conn, matchID string) {
		s.Leave(matchID)
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		log.Println("Socket disconnected:", s.ID(), reason)
	})

	return server
}
