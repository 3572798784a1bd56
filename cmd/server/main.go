package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	emailPkg "fitclub/internal/adapters/email"
	web "fitclub/internal/adapters/http"
	"fitclub/internal/adapters/http/perf"
	"fitclub/internal/adapters/storage"
	accountStore "fitclub/internal/adapters/storage/account"
	memberStore "fitclub/internal/adapters/storage/member"
	trainerStore "fitclub/internal/adapters/storage/trainer"
	workoutPlanStore "fitclub/internal/adapters/storage/workoutplan"
	"fitclub/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// WAL mode, foreign keys and busy timeout via DSN pragmas
	dbPath := envOrDefault("FITCLUB_DB", "fitclub.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	acctStore := accountStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:     acctStore,
		MemberStore:      memberStore.NewSQLiteStore(timedDB),
		TrainerStore:     trainerStore.NewSQLiteStore(timedDB),
		WorkoutPlanStore: workoutPlanStore.NewSQLiteStore(timedDB),
	}

	// Seed the initial staff account when the accounts table is empty
	seedInput := orchestrators.SeedAdminInput{
		Name:     envOrDefault("FITCLUB_ADMIN_NAME", "Administrator"),
		Email:    os.Getenv("FITCLUB_ADMIN_EMAIL"),
		Password: os.Getenv("FITCLUB_ADMIN_PASSWORD"),
	}
	seedDeps := orchestrators.SeedAdminDeps{AccountStore: acctStore}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedDeps, seedInput); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Configure email sender
	resendKey := os.Getenv("FITCLUB_RESEND_KEY")
	emailFrom := envOrDefault("FITCLUB_EMAIL_FROM", "FitClub <noreply@fitclub.example>")
	emailReply := envOrDefault("FITCLUB_REPLY_TO", "frontdesk@fitclub.example")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom, emailReply)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom, emailReply)
		log.Println("Email sender configured (noop, set FITCLUB_RESEND_KEY for real delivery)")
	}

	mux := web.NewMux("static", stores, collector)

	addr := envOrDefault("FITCLUB_ADDR", ":8080")
	log.Printf("FitClub %s starting on %s (env=%s)", version, addr, envOrDefault("FITCLUB_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
