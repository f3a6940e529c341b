package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hongminglow/simula-invest-be/internal/apperror"
	"github.com/hongminglow/simula-invest-be/internal/auth"
	"github.com/hongminglow/simula-invest-be/internal/http/respond"
	"github.com/hongminglow/simula-invest-be/internal/observability"
)

const bearerPrefix = "Bearer "

// TokenVerifier decodes a bearer token. Errors wrapping auth.ErrInvalidToken
// are rejections; anything else is treated as a fault.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Authenticate guards protected routes. A missing or malformed Authorization
// header yields 401, a rejected token 403, and any other fault 500. On
// success the user id is stored in the request context.
func Authenticate(verifier TokenVerifier, logger logrus.FieldLogger, metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, appErr := authenticate(verifier, r)
			if appErr != nil {
				metrics.RecordAuthFailure(failureReason(appErr))
				respond.Error(w, r, logger, appErr)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}

func authenticate(verifier TokenVerifier, r *http.Request) (userID int64, appErr *apperror.Error) {
	defer func() {
		if rec := recover(); rec != nil {
			userID = 0
			appErr = apperror.NewInternal("Internal server error", fmt.Errorf("panic while verifying token: %v", rec))
		}
	}()

	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		return 0, apperror.NewUnauthorized("No token provided")
	}

	claims, err := verifier.Verify(token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return 0, apperror.NewForbidden("Unauthorized", err)
		}
		return 0, apperror.NewInternal("Internal server error", err)
	}
	if claims == nil {
		return 0, apperror.NewInternal("Internal server error", errors.New("verifier returned no claims"))
	}
	return claims.UserID, nil
}

// bearerToken extracts the token from a header of the exact form
// "Bearer <token>".
func bearerToken(header string) (string, bool) {
	token, found := strings.CutPrefix(header, bearerPrefix)
	if !found || token == "" {
		return "", false
	}
	return token, true
}

func failureReason(err *apperror.Error) string {
	switch err.Kind {
	case apperror.Unauthorized:
		return observability.AuthMissingToken
	case apperror.Forbidden:
		return observability.AuthInvalidToken
	default:
		return observability.AuthFault
	}
}
