package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// ActorIDKey is the context key for the authenticated actor's user ID
const ActorIDKey contextKey = "actor_id"

// SessionClaims are the custom JWT claims carried by a session token.
type SessionClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// SessionMiddleware resolves an actor identity from a bearer session token.
// Extraction is optional: requests without a valid token pass through with
// no actor attached, and the service layer decides whether the operation
// requires one. Rate limiting therefore still applies to unauthenticated
// callers.
type SessionMiddleware struct {
	secret []byte
}

// NewSessionMiddleware creates a SessionMiddleware with the given HMAC secret.
func NewSessionMiddleware(secret string) *SessionMiddleware {
	return &SessionMiddleware{secret: []byte(secret)}
}

// Extract returns an Echo middleware that attaches the actor ID to the
// request context when a valid bearer token is present.
func (m *SessionMiddleware) Extract() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return next(c)
			}

			actorID, err := m.validate(parts[1])
			if err != nil {
				log.Debug().Err(err).Msg("Invalid session token")
				return next(c)
			}

			ctx := context.WithValue(c.Request().Context(), ActorIDKey, actorID)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func (m *SessionMiddleware) validate(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid session claims")
	}
	return uuid.Parse(claims.UserID)
}

// GetActorID extracts the authenticated actor's ID from the request context.
// Returns uuid.Nil when no actor is attached.
func GetActorID(c echo.Context) uuid.UUID {
	actorID, _ := c.Request().Context().Value(ActorIDKey).(uuid.UUID)
	return actorID
}
