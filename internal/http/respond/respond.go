package respond

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/hongminglow/simula-invest-be/internal/apperror"
	"github.com/hongminglow/simula-invest-be/internal/auth"
)

// MessageBody is the shape of every informational and error response.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON writes payload with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("respond: encode payload failed")
	}
}

// Message writes {"message": message} with the given status.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, MessageBody{Message: message})
}

// Error writes the client-safe message of err and logs its cause. Errors
// that are not *apperror.Error are written as a generic internal fault.
func Error(w http.ResponseWriter, r *http.Request, logger logrus.FieldLogger, err error) {
	appErr := apperror.As(err)
	status := appErr.Status()

	fields := logrus.Fields{
		"kind":   appErr.Kind.String(),
		"status": status,
		"method": r.Method,
		"path":   r.URL.Path,
	}
	if reqID := middleware.GetReqID(r.Context()); reqID != "" {
		fields["request_id"] = reqID
	}
	if userID, ok := auth.UserIDFromContext(r.Context()); ok {
		fields["user_id"] = userID
	}
	entry := logger.WithFields(fields)
	if appErr.Err != nil {
		entry = entry.WithError(appErr.Err)
	}

	switch appErr.Kind {
	case apperror.Internal:
		entry.Error(appErr.Message)
	case apperror.Forbidden:
		entry.Warn(appErr.Message)
	default:
		entry.Debug(appErr.Message)
	}

	Message(w, status, appErr.Message)
}
