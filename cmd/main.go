package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Vovarama1992/openauto-assist/internal/ai"
	"github.com/Vovarama1992/openauto-assist/internal/assistant"
	"github.com/Vovarama1992/openauto-assist/internal/chat"
	"github.com/Vovarama1992/openauto-assist/internal/config"
	"github.com/Vovarama1992/openauto-assist/internal/conversation"
	"github.com/Vovarama1992/openauto-assist/internal/reference"
	"github.com/Vovarama1992/openauto-assist/internal/selection"
)

func main() {
	cfg := config.Load()

	// --- Journal (optional) ---
	journal := conversation.NopJournal
	if cfg.DatabaseURL != "" {
		db := openDB(cfg.DatabaseURL)
		defer db.Close()

		journal = conversation.NewPGJournal(db)
		log.Println("[journal] postgres transcript journal enabled")
	}

	// --- Provider ---
	aiClient := ai.NewOpenAIClient(ai.OpenAIOptions{
		APIKey:  cfg.OpenAIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
		RPS:     cfg.OpenAIRPS,
		Burst:   cfg.OpenAIBurst,
	})
	if !aiClient.Configured() {
		log.Println("[ai] OPENAI_API_KEY not set; chat requests will fail with a configuration error")
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	// --- Chat wiring ---
	store := conversation.NewStore(&conversation.AtomicCounter{})
	svc := assistant.NewService(store, aiClient, assistant.Options{
		Journal: journal,
		Timeout: cfg.ProviderTimeout,
	})
	chat.RegisterRoutes(r, chat.NewHandler(svc, aiClient.Configured))

	// --- Reference drawer ---
	catalog := reference.DefaultCatalog()
	drawers, err := reference.NewDrawers(catalog, cfg.UISessions)
	if err != nil {
		log.Fatalf("drawers init error: %v", err)
	}
	reference.RegisterRoutes(r, reference.NewHandler(catalog, drawers))

	// --- Selection bridge ---
	selections, err := selection.NewRegistry(cfg.UISessions)
	if err != nil {
		log.Fatalf("selection init error: %v", err)
	}
	selection.RegisterRoutes(r, selection.NewHandler(selections))

	// --- health ---
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(r, "openauto-assist"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func openDB(dsn string) *sql.DB {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("db ping error: %v", err)
	}
	if err := conversation.Migrate(ctx, db); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}
	return db
}
