package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"vibematch_server/config"
	"vibematch_server/routes"
	"vibematch_server/services"
	"vibematch_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	cfg := config.Load()

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Initialize Services
	profileService := &services.VibeProfileService{Dynamo: dynamoService}
	matchService := &services.MatchService{Dynamo: dynamoService, Profiles: profileService}
	prismService := &services.PrismService{Dynamo: dynamoService, Matches: matchService, Profiles: profileService}
	moderationService := services.NewModerationService(cfg.ModerationEndpoint, cfg.ModerationAPIKey)
	chatService := &services.ChatService{
		Dynamo:   dynamoService,
		Matches:  matchService,
		Prism:    prismService,
		Analyzer: moderationService,
	}
	reflectionService := &services.ReflectionService{}

	// Realtime relay for match chat rooms
	socketServer := socket.NewSocketServer()
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Printf("Socket server error: %v", err)
		}
	}()
	defer socketServer.Close()

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to VibeMatch")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}).Methods("GET")

	r.Handle("/socket.io/", socketServer)

	// Register routes
	routes.RegisterVibeProfileRoutes(r, profileService)
	routes.RegisterMatchRoutes(r, matchService)
	routes.RegisterChatRoutes(r, chatService, socketServer)
	routes.RegisterPrismRoutes(r, prismService)
	routes.RegisterReflectionRoutes(r, reflectionService)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, corsHandler))
}
