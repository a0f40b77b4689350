package main

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/greenprint-labs/greenprint/internal/api"
	dbstore "github.com/greenprint-labs/greenprint/internal/db"
	"github.com/greenprint-labs/greenprint/internal/middleware"
	"github.com/greenprint-labs/greenprint/internal/utils"
)

func main() {
	addr := utils.EnvOr("GREENPRINT_ADDR", ":8080")
	commit := os.Getenv("GREENPRINT_COMMIT")
	buildTime := os.Getenv("GREENPRINT_BUILD_TIME")

	store, closeStore, err := openStore()
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer closeStore()

	mux := http.NewServeMux()
	api.NewRouter(store).Register(mux)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":         true,
			"name":       "Greenprint API",
			"commit":     commit,
			"build_time": buildTime,
		})
	})

	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"commit":     commit,
			"build_time": buildTime,
		})
	})

	// Serve the dashboard build when GREENPRINT_STATIC_DIR is set
	// (fullstack image); otherwise the binary is API-only.
	if staticDir := os.Getenv("GREENPRINT_STATIC_DIR"); staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}

	handler := middleware.CORS(middleware.SecureHeaders(middleware.NoStore(middleware.WithAuth(mux))))

	log.Printf("Greenprint server listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// openStore opens the sqlite-backed store when GREENPRINT_SQLITE_PATH
// is configured and falls back to the in-memory store otherwise, so a
// bare binary still serves a working (ephemeral) API.
func openStore() (api.Store, func(), error) {
	sqlitePath := os.Getenv("GREENPRINT_SQLITE_PATH")
	if sqlitePath == "" {
		log.Printf("GREENPRINT_SQLITE_PATH not set, using in-memory store")
		return api.NewMemoryStore(), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(sqlitePath), 0o755); err != nil {
		return nil, nil, err
	}
	dsn := "file:" + filepath.ToSlash(sqlitePath) + "?_busy_timeout=5000"
	sqliteDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := dbstore.RunMigrations(sqliteDB, os.Getenv("GREENPRINT_MIGRATIONS_DIR")); err != nil {
		_ = sqliteDB.Close()
		return nil, nil, err
	}
	store, err := dbstore.NewSQLiteStore(sqliteDB)
	if err != nil {
		_ = sqliteDB.Close()
		return nil, nil, err
	}
	closer := func() {
		if cerr := sqliteDB.Close(); cerr != nil {
			log.Printf("warning: failed to close sqlite db: %v", cerr)
		}
	}
	return store, closer, nil
}
