package testutils

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/aaravmahajanofficial/tutoring-cart/internal/api/middleware"
	"github.com/aaravmahajanofficial/tutoring-cart/internal/models"
	"github.com/google/uuid"
)

// NewAuthenticatedRequest builds a request as it looks after the Logging and
// Authenticate middlewares ran for customerID.
func NewAuthenticatedRequest(method, target string, body []byte, customerID uuid.UUID, pathParams map[string]string) *http.Request {
	req := newRequest(method, target, body, pathParams)

	claims := &models.Claims{UserID: customerID, Email: "student@example.com"}
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)

	return req.WithContext(ctx)
}

// NewAnonymousRequest carries a logger but no claims.
func NewAnonymousRequest(method, target string, body []byte, pathParams map[string]string) *http.Request {
	return newRequest(method, target, body, pathParams)
}

func newRequest(method, target string, body []byte, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(req.Context(), middleware.LoggerKey, logger)

	return req.WithContext(ctx)
}
