package middleware

import (
	"context"
	"log"
	"net/http"
	"strconv"

	db "gestor-server/src/db/sql"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountMemberMiddleware resolves the {account_id} URL param, verifies the
// authenticated user is a member, and stores the account id in the context.
// Everything nested under /accounts/{account_id} relies on this tenant check.
func AccountMemberMiddleware(pool *pgxpool.Pool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := r.Context().Value("user_id").(int64)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			accountIDStr := chi.URLParam(r, "account_id")
			accountID, err := strconv.ParseInt(accountIDStr, 10, 64)
			if err != nil {
				http.Error(w, "invalid account id", http.StatusBadRequest)
				return
			}

			member, err := db.IsAccountMember(r.Context(), pool, userID, accountID)
			if err != nil {
				log.Printf("ERROR: Membership check failed for user %d, account %d: %v", userID, accountID, err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if !member {
				http.Error(w, "account not found", http.StatusNotFound)
				return
			}

			ctx := context.WithValue(r.Context(), "account_id", accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
