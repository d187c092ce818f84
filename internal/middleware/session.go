package middleware

import (
	"context"
	"net/http"
	"shiftreport/internal/logger"
	"shiftreport/internal/utils"

	"go.uber.org/zap"
)

const SessionCookieName = "session"

// Session разбирает сессионную куку и кладёт user_id/is_admin в контекст.
// Без куки или с битой кукой запрос идёт дальше неаутентифицированным —
// решение принимают RequireLogin/RequireAdmin.
func Session(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, isAdmin, err := utils.ParseSessionToken(secret, cookie.Value)
			if err != nil {
				logger.WithCtx(r.Context()).Warn("Сессионная кука не прошла проверку", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextUserID, userID)
			ctx = context.WithValue(ctx, ContextIsAdmin, isAdmin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireLogin пускает только аутентифицированных, остальных — на /login.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Context().Value(ContextUserID).(int); !ok {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin пускает только администраторов, остальных — на /admin/login.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		isAdmin, ok := r.Context().Value(ContextIsAdmin).(bool)
		if !ok || !isAdmin {
			http.Redirect(w, r, "/admin/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
