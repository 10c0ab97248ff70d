package main

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/vitornoms1/FinanceManager/internal/admin"
	"github.com/vitornoms1/FinanceManager/internal/auth"
	"github.com/vitornoms1/FinanceManager/internal/balance"
	"github.com/vitornoms1/FinanceManager/internal/bill"
	"github.com/vitornoms1/FinanceManager/internal/config"
	"github.com/vitornoms1/FinanceManager/internal/expense"
	apphttp "github.com/vitornoms1/FinanceManager/internal/http"
	"github.com/vitornoms1/FinanceManager/internal/income"
	"github.com/vitornoms1/FinanceManager/internal/investment"
	"github.com/vitornoms1/FinanceManager/internal/logger"
	"github.com/vitornoms1/FinanceManager/internal/metrics"
	"github.com/vitornoms1/FinanceManager/internal/reports"
	"github.com/vitornoms1/FinanceManager/internal/router"
)

func main() {
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("creating pgx pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("pinging database", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"

			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			}

			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	app.Use(router.CorsMiddleware(cfg.CORSOrigins))
	app.Use(router.RequestLogger())
	app.Use(metrics.Middleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/metrics", metrics.Handler())

	expenseRepo := expense.NewRepository(pool)
	investmentRepo := investment.NewRepository(pool)
	incomeRepo := income.NewRepository(pool)
	billRepo := bill.NewRepository(pool)

	r := &router.Router{
		AuthHandler: &apphttp.AuthHandler{
			DB:        pool,
			JWTSecret: cfg.JWTSecret,
			TokenTTL:  cfg.TokenTTL,
		},
		ExpenseHandler:    expense.NewHandler(expenseRepo),
		InvestmentHandler: investment.NewHandler(investmentRepo),
		IncomeHandler:     income.NewHandler(incomeRepo),
		BillHandler:       bill.NewHandler(billRepo, cfg.BillMonthlyGuard),
		BalanceHandler: &balance.Handler{
			Incomes:     incomeRepo,
			Expenses:    expenseRepo,
			Bills:       billRepo,
			Investments: investmentRepo,
		},
		ReportsHandler: reports.NewHandler(pool),
		AdminHandler:   admin.NewHandler(pool),
		DemoHandler:    &apphttp.DemoHandler{DB: pool},

		AuthMW:    auth.Middleware(cfg.JWTSecret),
		AdminMW:   admin.RequireAdminKey(cfg.AdminKey),
		AuthRate:  router.RateLimitAuth(cfg.AuthRateMax, cfg.RateWindow),
		WriteRate: router.RateLimitWrite(cfg.WriteRateMax, cfg.RateWindow),

		Dev: cfg.Dev(),
	}
	r.RegisterRoutes(app)

	logger.Info("listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
