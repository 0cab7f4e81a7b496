package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/crdc/crdc/internal/platform/auth"
)

// ActivityRecorder persists a user activity entry. The concrete
// implementation writes to the user_activity_log table; tests substitute a
// mock.
type ActivityRecorder interface {
	RecordActivity(ctx context.Context, userName, activityType, description string) error
}

// ActivityRecorderFunc adapts a function to the ActivityRecorder interface.
type ActivityRecorderFunc func(ctx context.Context, userName, activityType, description string) error

func (f ActivityRecorderFunc) RecordActivity(ctx context.Context, userName, activityType, description string) error {
	return f(ctx, userName, activityType, description)
}

// Activity records one user_activity_log row per authenticated API request.
// Recording failures are logged and swallowed: the audit trail must never
// break data entry.
func Activity(logger zerolog.Logger, recorder ActivityRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if !strings.HasPrefix(req.URL.Path, "/api/v1/") {
				return next(c)
			}

			err := next(c)

			user := auth.UserNameFromContext(req.Context())
			if user == "" {
				return err
			}

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			desc := fmt.Sprintf("%s %s (%d)", req.Method, req.URL.Path, status)

			if recErr := recorder.RecordActivity(req.Context(), user, activityType(req.Method), desc); recErr != nil {
				logger.Warn().Err(recErr).
					Str("user", user).
					Str("path", req.URL.Path).
					Msg("failed to record user activity")
			}

			return err
		}
	}
}

func activityType(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead:
		return "VIEW"
	case http.MethodPost:
		return "CREATE"
	case http.MethodPut, http.MethodPatch:
		return "UPDATE"
	case http.MethodDelete:
		return "DELETE"
	default:
		return "OTHER"
	}
}
