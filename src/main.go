package main

import (
	"context"
	"log"
	"net/http"

	"gestor-server/src/api"
	"gestor-server/src/automation"
	"gestor-server/src/config"
	"gestor-server/src/db"
	sqldb "gestor-server/src/db/sql"
	"gestor-server/src/scheduler"
)

func main() {
	cfg := config.Load()

	// Connect to database
	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(context.Background(), pool); err != nil {
		log.Fatalf("Schema bootstrap failed: %v", err)
	}

	db.InitCache()

	// Automation: the store backs both the event evaluator (invoked from the
	// transaction-create handler) and the daily scheduled runner.
	store := sqldb.NewAutomationStore(pool)
	eval := automation.NewEvaluator(store, store)

	if cfg.SchedulerEnabled {
		scheduler.Start(eval)
	}

	// Router
	router := api.NewRouter(pool, eval)

	log.Println("API server running on port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
