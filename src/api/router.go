package api

import (
	"net/http"

	"gestor-server/src/automation"
	"gestor-server/src/handlers"
	"gestor-server/src/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRouter(pool *pgxpool.Pool, eval *automation.Evaluator) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", handlers.Login(pool))
		r.Post("/register", handlers.Register(pool))

		// Protected routes
		r.With(middleware.JWTAuthMiddleware).Group(func(r chi.Router) {
			// User
			r.Get("/me", handlers.GetMe(pool))

			// Insights (produced by the external LLM batch job)
			r.Get("/insights", handlers.GetInsights(pool))
			r.Post("/insights/{insight_id}/read", handlers.MarkInsightRead(pool))

			// Accounts
			r.Post("/accounts", handlers.CreateAccount(pool))
			r.Get("/accounts", handlers.GetAccounts(pool))

			// Everything below is scoped to one account the user belongs to
			r.Route("/accounts/{account_id}", func(r chi.Router) {
				r.Use(middleware.AccountMemberMiddleware(pool))

				// Categories (reads for all members, writes premium-only)
				r.Get("/categories", handlers.GetCategories(pool))
				r.With(middleware.PremiumMiddleware).Post("/categories", handlers.CreateCategory(pool))
				r.With(middleware.PremiumMiddleware).Delete("/categories/{category_id}", handlers.DeleteCategory(pool))

				// Transactions; creating one runs the event rule evaluator
				r.Post("/transactions", handlers.CreateTransaction(pool, eval))
				r.Get("/transactions", handlers.GetTransactions(pool))
				r.Get("/transactions/balance", handlers.GetCategoryBalance(pool))

				// Automation rules (premium-only)
				r.With(middleware.PremiumMiddleware).Group(func(r chi.Router) {
					r.Post("/event-rules", handlers.CreateEventRule(pool))
					r.Get("/event-rules", handlers.GetAllEventRules(pool))
					r.Get("/event-rules/{rule_id}", handlers.GetEventRuleByID(pool))
					r.Put("/event-rules/{rule_id}", handlers.UpdateEventRule(pool))
					r.Delete("/event-rules/{rule_id}", handlers.DeleteEventRule(pool))

					r.Post("/scheduled-rules", handlers.CreateScheduledRule(pool))
					r.Get("/scheduled-rules", handlers.GetAllScheduledRules(pool))
					r.Get("/scheduled-rules/{rule_id}", handlers.GetScheduledRuleByID(pool))
					r.Put("/scheduled-rules/{rule_id}", handlers.UpdateScheduledRule(pool))
					r.Delete("/scheduled-rules/{rule_id}", handlers.DeleteScheduledRule(pool))
				})
			})
		})

		// Operator surface (cron runner, insight batch job)
		r.With(middleware.InternalTokenMiddleware).Group(func(r chi.Router) {
			r.Post("/internal/automation/run", handlers.RunScheduledRules(eval))
			r.Post("/internal/insights", handlers.IngestInsight(pool))
			r.Put("/internal/users/{user_id}/role", handlers.SetUserRole(pool))
		})
	})

	return r
}
