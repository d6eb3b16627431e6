package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"mingle_server/config"
	"mingle_server/controllers"
	"mingle_server/models"
	"mingle_server/routes"
	"mingle_server/services"
	"mingle_server/socket"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

func main() {
	cfg := config.Load()
	log.Printf("Starting Mingle server (store=%s, decision=%s, window=%s)", cfg.StoreBackend, cfg.MatchDecision, cfg.MatchWindow)

	// Pick the storage backend
	var store services.Store
	switch cfg.StoreBackend {
	case models.StoreDynamo:
		log.Println("Initializing DynamoDB client...")
		dynamoClient := services.InitializeDynamoDBClient(cfg.AWSRegion)
		store = services.NewDynamoStore(&services.DynamoService{Client: dynamoClient})
		log.Println("DynamoDB client initialized.")
	case models.StoreMongo:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		mongoStore, err := services.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		cancel()
		if err != nil {
			log.Fatalf("Failed to initialize MongoDB store: %v", err)
		}
		store = mongoStore
	case models.StoreMemory:
		log.Println("Using in-memory store (demo mode)")
		store = services.NewMemoryStore()
	default:
		log.Fatalf("Unknown STORE_BACKEND: %q", cfg.StoreBackend)
	}

	// Socket server carries match and chat events to connected clients
	socketServer := socket.NewSocketServer()
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Fatalf("Socket server error: %v", err)
		}
	}()
	defer socketServer.Close()

	notifier := &socket.Notifier{Server: socketServer}
	now := time.Now

	// Initialize Services
	checkInService := &services.CheckInService{
		Store:      store,
		LikesLimit: cfg.LikesPerVenueLimit,
		Now:        now,
	}
	chatService := &services.ChatService{
		Store:    store,
		Notifier: notifier,
		Now:      now,
	}
	matchService := &services.MatchService{
		Store:         store,
		Chat:          chatService,
		Notifier:      notifier,
		Window:        cfg.MatchWindow,
		SoonThreshold: cfg.ExpiringSoonThreshold,
		Now:           now,
	}
	reconnectService := &services.ReconnectService{
		Store:    store,
		Notifier: notifier,
		Window:   cfg.MatchWindow,
		Now:      now,
	}

	var decision services.MatchDecision
	if cfg.MatchDecision == models.DecisionDemo {
		decision = services.NewDemoDecision(cfg.DemoMatchProbability)
	} else {
		decision = &services.MutualDecision{Interests: store, Now: now}
	}

	interestService := &services.InterestService{
		Store:    store,
		CheckIns: checkInService,
		Decision: decision,
		Matches:  matchService,
		Limit:    cfg.LikesPerVenueLimit,
		Window:   cfg.MatchWindow,
		Now:      now,
	}
	demoService := &services.DemoService{Store: store, CheckIns: checkInService}

	// Initialize the router
	r := mux.NewRouter()

	r.HandleFunc("/", controllers.WelcomeHandler).Methods("GET")
	r.HandleFunc("/health", controllers.HealthCheckHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.Handle("/socket.io/", socketServer)

	// Register routes
	routes.RegisterInterestRoutes(r, interestService)
	routes.RegisterMatchRoutes(r, matchService, reconnectService)
	routes.RegisterChatRoutes(r, chatService)
	routes.RegisterCheckInRoutes(r, checkInService)
	routes.RegisterDemoRoutes(r, demoService)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, corsHandler))
}
