package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogging(t *testing.T) {
	cases := []struct {
		status int
		level  logrus.Level
	}{
		{http.StatusOK, logrus.InfoLevel},
		{http.StatusNotFound, logrus.WarnLevel},
		{http.StatusInternalServerError, logrus.ErrorLevel},
	}
	for _, tc := range cases {
		logger, hook := test.NewNullLogger()
		h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte("body"))
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/delete-Simulation", nil))

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, tc.level, entry.Level)
		assert.Equal(t, tc.status, entry.Data["status"])
		assert.Equal(t, "DELETE", entry.Data["method"])
		assert.Equal(t, "/delete-Simulation", entry.Data["path"])
		assert.Equal(t, 4, entry.Data["bytes"])
	}
}
