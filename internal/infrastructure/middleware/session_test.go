package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// stubChecker is a fixed-answer SessionChecker for testing.
type stubChecker bool

func (s stubChecker) IsLoggedIn() bool { return bool(s) }

func TestLoginRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		loggedIn       stubChecker
		expectedStatus int
		handlerReached bool
	}{
		{
			name:           "logged-in session passes through",
			loggedIn:       true,
			expectedStatus: http.StatusOK,
			handlerReached: true,
		},
		{
			name:           "logged-out session is rejected",
			loggedIn:       false,
			expectedStatus: http.StatusUnauthorized,
			handlerReached: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false

			router := gin.New()
			router.Use(LoginRequired(tt.loggedIn))
			router.GET("/customers", func(c *gin.Context) {
				reached = true
				c.Status(http.StatusOK)
			})

			req, _ := http.NewRequest(http.MethodGet, "/customers", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.handlerReached, reached, "unexpected handler reachability")
			if !tt.handlerReached {
				assert.JSONEq(t, `{"error":"login required"}`, w.Body.String())
			}
		})
	}
}
