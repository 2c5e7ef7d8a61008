package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"chat-connector/internal/config"
	Irepository "chat-connector/internal/domain/interfaces/repository"
	Iservices "chat-connector/internal/domain/interfaces/services"
	"chat-connector/internal/infra/handlers"
	"chat-connector/internal/infra/logger"
	"chat-connector/internal/infra/nlp"
	"chat-connector/internal/infra/provider"
	"chat-connector/internal/infra/repository"
	"chat-connector/internal/infra/routes"
	"chat-connector/internal/infra/services"
	"chat-connector/internal/middleware"
	client "chat-connector/internal/pkg"

	"github.com/gorilla/mux"
)

func main() {
	config.LoadEnv()

	ctx := context.Background()
	log := logger.NewLogger(ctx, true)

	contextTTL, err := time.ParseDuration(config.GetEnvOr("CONTEXT_TTL", "6h"))
	if err != nil {
		log.Warn(fmt.Sprintf("Invalid CONTEXT_TTL, using 6h: %v", err))
		contextTTL = 6 * time.Hour
	}
	maxHistory, err := strconv.Atoi(config.GetEnvOr("HISTORY_LIMIT", "80"))
	if err != nil {
		maxHistory = 80
	}

	var store Irepository.ContextStore
	switch config.GetEnvOr("CONTEXT_STORE", "memory") {
	case "mongo":
		mongoClient := client.MongoClient()
		store = repository.NewMongoContextStore(mongoClient.Database("ChatContext"))
		log.Info("Using MongoDB context store")
	case "redis":
		store = repository.NewRedisContextStore(client.RedisClient(), contextTTL, log)
		log.Info("Using Redis context store")
	default:
		store = repository.NewMemoryContextStore()
		log.Info("Using in-memory context store")
	}

	tokenizer := nlp.NewKagomeTokenizer(log)
	// warm the dictionary so the first request does not pay for the build
	go func() { _ = tokenizer.Ready(ctx) }()

	httpClient := &http.Client{Timeout: 8 * time.Second}

	advice := provider.NewAdviceSlipProvider(log, httpClient, config.GetEnvOr("ADVICE_API_URL", "https://api.adviceslip.com"))
	providers := services.Providers{
		Encyclopedia: provider.NewWikipediaProvider(log, httpClient, config.GetEnvOr("WIKIPEDIA_API_URL", "https://ja.wikipedia.org")),
		Summary:      provider.NewDuckDuckGoProvider(log, httpClient, config.GetEnvOr("DUCKDUCKGO_API_URL", "https://api.duckduckgo.com")),
		Weather: provider.NewOpenMeteoProvider(log, httpClient,
			config.GetEnvOr("GEOCODE_API_URL", "https://nominatim.openstreetmap.org"),
			config.GetEnvOr("FORECAST_API_URL", "https://api.open-meteo.com")),
		Joke:       provider.NewJokeProvider(log, httpClient, config.GetEnvOr("JOKE_API_URL", "https://official-joke-api.appspot.com"), advice),
		Advice:     advice,
		Recipe:     provider.NewMealDBProvider(log, httpClient, config.GetEnvOr("RECIPE_API_URL", "https://www.themealdb.com")),
		Calculator: provider.NewMathJSProvider(log, httpClient, config.GetEnvOr("CALCULATOR_API_URL", "https://api.mathjs.org")),
	}

	var contextSvc Iservices.IContextService = services.NewContextService(store, log, contextTTL, maxHistory)
	composer := services.NewComposerService(log)
	var dispatchSvc Iservices.IDispatchService = services.NewDispatchService(log, contextSvc, tokenizer, composer, providers)

	chatHandlers := handlers.NewChatHandlers(log, dispatchSvc)

	router := mux.NewRouter()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware(log))

	routes := routes.NewRoutes(router, chatHandlers)
	routes.Init()

	port := config.GetEnvOr("PORT", "3000")
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: router,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	go func() {
		log.Info(fmt.Sprintf("Server is running on port %s", port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(fmt.Sprintf("Error running HTTP server: %s", err))
			os.Exit(1)
		}
	}()

	<-stop
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(fmt.Sprintf("Server forced to shutdown: %v", err))
	} else {
		log.Info("Server stopped gracefully.")
	}
}
