package api

import (
	"net/http"

	"finbook-server/src/config"
	"finbook-server/src/handlers"
	"finbook-server/src/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRouter(pool *pgxpool.Pool, cfg config.Config) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		// Open endpoints
		r.Post("/user/create", handlers.Register(pool, cfg))
		r.Post("/user/token", handlers.CreateToken(pool, cfg))

		// The account-type catalog is global: readable without a token,
		// creatable without ownership, and not updatable or deletable.
		r.Get("/account_type", handlers.GetAllAccountTypes(pool))
		r.Post("/account_type", handlers.CreateAccountType(pool))

		// List-only alias; any write here is answered with 405.
		r.Get("/account-type", handlers.GetAllAccountTypes(pool))

		// Protected routes
		r.With(middleware.JWTAuthMiddleware).Group(func(r chi.Router) {
			// User profile
			r.Get("/user/me", handlers.GetMe(pool))
			r.Put("/user/me", handlers.UpdateMe(pool))
			r.Patch("/user/me", handlers.UpdateMe(pool))

			// Accounts
			r.Post("/accounts", handlers.CreateAccount(pool))
			r.Get("/accounts", handlers.GetAllAccounts(pool))
			r.Get("/accounts/{account_id}", handlers.GetAccountByID(pool))
			r.Put("/accounts/{account_id}", handlers.UpdateAccount(pool))
			r.Patch("/accounts/{account_id}", handlers.UpdateAccount(pool))
			r.Delete("/accounts/{account_id}", handlers.DeleteAccount(pool))

			// Transaction categories
			r.Post("/categories", handlers.CreateCategory(pool))
			r.Get("/categories", handlers.GetAllCategories(pool))
			r.Get("/categories/{category_id}", handlers.GetCategoryByID(pool))
			r.Put("/categories/{category_id}", handlers.UpdateCategory(pool))
			r.Patch("/categories/{category_id}", handlers.UpdateCategory(pool))
			r.Delete("/categories/{category_id}", handlers.DeleteCategory(pool))

			// Transactions
			r.Post("/transactions", handlers.CreateTransaction(pool))
			r.Get("/transactions", handlers.GetAllTransactions(pool))
			r.Get("/transactions/{transaction_id}", handlers.GetTransactionByID(pool))
			r.Put("/transactions/{transaction_id}", handlers.UpdateTransaction(pool))
			r.Patch("/transactions/{transaction_id}", handlers.UpdateTransaction(pool))
			r.Delete("/transactions/{transaction_id}", handlers.DeleteTransaction(pool))
		})
	})

	return r
}
