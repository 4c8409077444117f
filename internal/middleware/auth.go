package middleware

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"github.com/gin-gonic/gin"

	"github.com/mmynk/sharesplit/internal/auth"
	"github.com/mmynk/sharesplit/pkg/api"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"

	requestRecordKey contextKey = "request_record"
)

// requestRecord collects what inner interceptors learn about a call.
type requestRecord struct {
	userID string
}

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// WithUser returns a copy of ctx carrying the authenticated user.
// A logging interceptor further out sees the user through its request holder.
func WithUser(ctx context.Context, userID string) context.Context {
	if rec, ok := ctx.Value(requestRecordKey).(*requestRecord); ok {
		rec.userID = userID
	}
	return context.WithValue(ctx, UserIDKey, userID)
}

// RequireAuth returns a Connect interceptor that validates the bearer token in
// the Authorization header and adds the user ID to the context.
func RequireAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			claims, err := jwtManager.ValidateHeader(req.Header().Get("Authorization"))
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithUser(ctx, claims.UserID), req)
		}
	}
}

// AuthenticatedInterceptors is the interceptor chain for services that need a
// signed-in user. Logging runs outermost so rejected calls are logged and counted.
func AuthenticatedInterceptors(jwtManager *auth.JWTManager) connect.Option {
	return connect.WithInterceptors(LoggingInterceptor(), RequireAuth(jwtManager))
}

// GinRequireAuth is RequireAuth for the REST routes. The user is stored on the
// request context, so handlers read it with GetUserID(c.Request.Context()).
func GinRequireAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := jwtManager.ValidateHeader(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: err.Error()})
			return
		}

		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), claims.UserID))
		c.Next()
	}
}
