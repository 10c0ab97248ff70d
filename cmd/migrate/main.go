package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vitornoms1/FinanceManager/internal/logger"
)

func main() {
	defer logger.Sync()
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		logger.Fatal("opening database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("pinging database", zap.Error(err))
	}

	sqlBytes, err := os.ReadFile("migrations/migrations.sql")
	if err != nil {
		logger.Fatal("reading migrations file", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info("applying migrations")
	if _, err := db.ExecContext(ctx, string(sqlBytes)); err != nil {
		logger.Fatal("applying migrations", zap.Error(err))
	}

	logger.Info("migrations applied")
}
