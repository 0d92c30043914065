package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"pingme/internal/adapter/api"
	"pingme/internal/adapter/api/handler"
	apimiddleware "pingme/internal/adapter/api/middleware"
	"pingme/internal/adapter/api/router"
	"pingme/internal/adapter/repository"
	"pingme/internal/infrastructure/firebase"
	"pingme/internal/infrastructure/ratelimit"
	"pingme/internal/infrastructure/storage"
	"pingme/internal/infrastructure/websocket"
	"pingme/internal/usecase"
	"pingme/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	serviceAccountPath := ""

	// Service account JSON from the environment in production, a file path
	// for local development.
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}
		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(
		ctx,
		cfg.StorageBucket,
		cfg.FirebaseProject,
		serviceAccountPath,
	)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	messageRepo := repository.NewFirestoreMessageRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	wsManager := websocket.NewManager()

	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	authUseCase := usecase.NewAuthUseCase(firebaseAuthClient, userRepo, cfg.JWTSecret, cfg.WSTicketTTL)
	userUseCase := usecase.NewUserUseCase(userRepo, storageClient)
	achievementUseCase := usecase.NewAchievementUseCase(userRepo)
	messageUseCase := usecase.NewMessageUseCase(messageRepo, userRepo, storageClient, wsManager, achievementUseCase, rateLimiter, cfg.MaxVideoSizeMB)
	readReceiptUseCase := usecase.NewReadReceiptUseCase(messageRepo, userRepo, wsManager)

	// Wired after construction: the manager dispatches inbound read-receipt
	// frames to the usecase layer.
	wsManager.SetReadReceiptMarker(readReceiptUseCase)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	handlers := router.Handlers{
		Auth:      handler.NewAuthHandler(authUseCase, userUseCase),
		User:      handler.NewUserHandler(userUseCase, messageUseCase),
		Message:   handler.NewMessageHandler(messageUseCase),
		WebSocket: handler.NewWebSocketHandler(wsManager, authUseCase),
		Health:    handler.NewHealthHandler(firebaseAuthClient, wsManager),
	}

	router.Setup(e, handlers, authMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
