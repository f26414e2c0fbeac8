package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mindmetrics/dass21/internal/api"
	dbstore "github.com/mindmetrics/dass21/internal/db"
	"github.com/mindmetrics/dass21/internal/middleware"
	"github.com/mindmetrics/dass21/internal/utils"
)

func main() {
	// Optional .env file; real env vars win either way.
	if err := godotenv.Load(); err == nil {
		log.Printf("loaded configuration from .env")
	}

	addr := os.Getenv("DASS_ADDR")
	if addr == "" {
		addr = ":" + utils.SafeEnv("PORT", "8000")
	}
	commit := os.Getenv("DASS_COMMIT")
	buildTime := os.Getenv("DASS_BUILD_TIME")

	store := openStore(os.Getenv("DATABASE_URL"))

	mux := http.NewServeMux()
	api.NewRouter(store).Register(mux)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":         true,
			"name":       "DASS-21 API",
			"commit":     commit,
			"build_time": buildTime,
		})
	})

	handler := middleware.NoStore(middleware.SecureHeaders(middleware.CORS(mux)))

	log.Printf("DASS-21 server listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// openStore picks the persistence backend from the DATABASE_URL shape:
// postgres URLs get the Postgres store, any other non-empty value is treated
// as a SQLite file path, and an empty value runs fully in memory. A backend
// that fails to open degrades to the in-memory store instead of aborting,
// since scoring must stay available without persistence.
func openStore(dsn string) api.Store {
	switch {
	case dsn == "":
		log.Printf("DATABASE_URL not set, using in-memory store")
		return api.NewMemoryStore()
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://"):
		st, err := dbstore.NewPostgresStore(dsn)
		if err != nil {
			log.Printf("postgres store unavailable, falling back to in-memory store: %v", err)
			return api.NewMemoryStore()
		}
		log.Printf("using postgres store")
		return st
	default:
		st, err := dbstore.NewSQLiteStore(dsn)
		if err != nil {
			log.Printf("sqlite store unavailable, falling back to in-memory store: %v", err)
			return api.NewMemoryStore()
		}
		log.Printf("using sqlite store at %s", dsn)
		return st
	}
}
