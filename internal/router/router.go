package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vitornoms1/FinanceManager/internal/admin"
	"github.com/vitornoms1/FinanceManager/internal/balance"
	"github.com/vitornoms1/FinanceManager/internal/bill"
	"github.com/vitornoms1/FinanceManager/internal/expense"
	handlers "github.com/vitornoms1/FinanceManager/internal/http"
	"github.com/vitornoms1/FinanceManager/internal/income"
	"github.com/vitornoms1/FinanceManager/internal/investment"
	"github.com/vitornoms1/FinanceManager/internal/reports"
)

type Router struct {
	AuthHandler       *handlers.AuthHandler
	ExpenseHandler    *expense.Handler
	InvestmentHandler *investment.Handler
	IncomeHandler     *income.Handler
	BillHandler       *bill.Handler
	BalanceHandler    *balance.Handler
	ReportsHandler    *reports.Handler
	AdminHandler      *admin.Handler
	DemoHandler       *handlers.DemoHandler

	AuthMW    fiber.Handler
	AdminMW   fiber.Handler
	AuthRate  fiber.Handler
	WriteRate fiber.Handler

	// Dev mounts the install/test-db/reset-demo conveniences.
	Dev bool
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	app.Post("/auth/register", r.AuthRate, r.AuthHandler.Register)
	app.Post("/auth/login", r.AuthRate, r.AuthHandler.Login)
	app.Get("/auth/me", r.AuthMW, r.AuthHandler.Me)

	app.Get("/expenses", r.AuthMW, r.ExpenseHandler.List)
	app.Post("/expenses", r.AuthMW, r.WriteRate, r.ExpenseHandler.Create)
	app.Put("/expenses/:id", r.AuthMW, r.WriteRate, r.ExpenseHandler.Update)
	app.Delete("/expenses/:id", r.AuthMW, r.WriteRate, r.ExpenseHandler.Delete)

	app.Get("/investments", r.AuthMW, r.InvestmentHandler.List)
	app.Post("/investments", r.AuthMW, r.WriteRate, r.InvestmentHandler.Create)
	app.Put("/investments/:id", r.AuthMW, r.WriteRate, r.InvestmentHandler.Update)
	app.Delete("/investments/:id", r.AuthMW, r.WriteRate, r.InvestmentHandler.Delete)

	app.Get("/incomes", r.AuthMW, r.IncomeHandler.Get)
	app.Post("/incomes", r.AuthMW, r.WriteRate, r.IncomeHandler.Set)

	app.Get("/bills", r.AuthMW, r.BillHandler.List)
	app.Post("/bills", r.AuthMW, r.WriteRate, r.BillHandler.Create)
	app.Put("/bills/:id", r.AuthMW, r.WriteRate, r.BillHandler.Update)
	app.Delete("/bills/:id", r.AuthMW, r.WriteRate, r.BillHandler.Delete)
	app.Patch("/bills/:id/pay", r.AuthMW, r.WriteRate, r.BillHandler.Pay)

	app.Get("/balance", r.AuthMW, r.BalanceHandler.Get)

	app.Get("/reports/statement", r.AuthMW, r.ReportsHandler.Statement)

	if r.AdminHandler != nil && r.AdminMW != nil {
		app.Get("/admin/overview", r.AdminMW, r.AdminHandler.Overview)
	}

	if r.Dev && r.DemoHandler != nil {
		app.Get("/install", r.DemoHandler.Install)
		app.Get("/test-db", r.DemoHandler.TestDB)
		app.Get("/reset-demo", r.DemoHandler.ResetDemo)
	}
}
