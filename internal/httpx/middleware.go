package httpx

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const cartCookieName = "cart_id"

// cartCookieMaxAge keeps the cart identity for a week, as anonymous shop
// sessions go.
const cartCookieMaxAge = 7 * 24 * 60 * 60

type ctxKey string

const cartIDKey ctxKey = "cart_id"

// CartIdentity resolves the caller's cart id from the cart_id cookie, minting
// a fresh UUID when none is present, and echoes the cookie on the response so
// the identity sticks. The store only creates a cart on first cart access, so
// minting an id here has no side effect on state.
func CartIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cartID := ""
		if c, err := r.Cookie(cartCookieName); err == nil {
			cartID = c.Value
		}
		if cartID == "" {
			cartID = uuid.NewString()
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cartCookieName,
			Value:    cartID,
			Path:     "/",
			MaxAge:   cartCookieMaxAge,
			SameSite: http.SameSiteLaxMode,
		})

		ctx := context.WithValue(r.Context(), cartIDKey, cartID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CartIDFromContext returns the cart id placed by CartIdentity, or "" when
// the middleware did not run.
func CartIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(cartIDKey).(string)
	return id
}

// clearCartCookie drops the cart identity: after a successful checkout, and
// when a stale cookie references a cart the store no longer knows.
func clearCartCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cartCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	})
}
