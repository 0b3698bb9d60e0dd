package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"cms_backend/internal/feature/customer/domain/entity"
	"cms_backend/internal/feature/session"
)

// mockController is a mock implementation of the Controller interface.
type mockController struct {
	view       session.View
	customer   *entity.Customer
	remembered [2]string

	GoToRegisterFunc    func() error
	GoToLoginFunc       func() error
	ManageUsersFunc     func() error
	AddUserFunc         func() error
	BackToDashboardFunc func() error
}

func (m *mockController) CurrentView() session.View { return m.view }

func (m *mockController) CurrentCustomer() *entity.Customer { return m.customer }

func (m *mockController) RememberedCredential() (string, string) {
	return m.remembered[0], m.remembered[1]
}

func (m *mockController) GoToRegister() error {
	if m.GoToRegisterFunc != nil {
		return m.GoToRegisterFunc()
	}
	return nil
}

func (m *mockController) GoToLogin() error {
	if m.GoToLoginFunc != nil {
		return m.GoToLoginFunc()
	}
	return nil
}

func (m *mockController) ManageUsers() error {
	if m.ManageUsersFunc != nil {
		return m.ManageUsersFunc()
	}
	return nil
}

func (m *mockController) AddUser() error {
	if m.AddUserFunc != nil {
		return m.AddUserFunc()
	}
	return nil
}

func (m *mockController) BackToDashboard() error {
	if m.BackToDashboardFunc != nil {
		return m.BackToDashboardFunc()
	}
	return nil
}

func performRequest(handler gin.HandlerFunc, method, path string) *httptest.ResponseRecorder {
	router := gin.New()
	router.Handle(method, path, handler)

	req, _ := http.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSessionHandler_Current(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("login view exposes the remembered credential", func(t *testing.T) {
		mock := &mockController{
			view:       session.ViewLogin,
			remembered: [2]string{"jane@example.com", "secret1"},
		}
		handler := NewSessionHandler(mock)

		w := performRequest(handler.Current, http.MethodGet, "/session")

		assert.Equal(t, http.StatusOK, w.Code)

		var body gin.H
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "login", body["view"])
		assert.Equal(t, "jane@example.com", body["remembered_email"])
		assert.Equal(t, "secret1", body["remembered_password"])
		assert.NotContains(t, body, "customer", "no customer while logged out")
	})

	t.Run("dashboard view exposes the current customer", func(t *testing.T) {
		mock := &mockController{
			view: session.ViewDashboard,
			customer: &entity.Customer{
				ID: 1, FirstName: "Jane", LastName: "Doe",
				Email: "jane@example.com", Phone: "555", CreatedAt: time.Now(),
			},
			remembered: [2]string{"jane@example.com", "secret1"},
		}
		handler := NewSessionHandler(mock)

		w := performRequest(handler.Current, http.MethodGet, "/session")

		assert.Equal(t, http.StatusOK, w.Code)

		var body gin.H
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "dashboard", body["view"])
		assert.NotContains(t, body, "remembered_email", "credential is only offered on the login view")

		customer, ok := body["customer"].(map[string]any)
		assert.True(t, ok, "customer should be present")
		assert.Equal(t, "jane@example.com", customer["email"])
		assert.NotContains(t, customer, "password_hash", "hash must never be exposed")
	})
}

func TestSessionHandler_Navigation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("successful transition reports the new view", func(t *testing.T) {
		mock := &mockController{view: session.ViewRegister}
		handler := NewSessionHandler(mock)

		w := performRequest(handler.GoToRegister, http.MethodPost, "/navigate/register")

		assert.Equal(t, http.StatusOK, w.Code)

		var body gin.H
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "register", body["view"])
	})

	t.Run("invalid transition is rejected with a conflict", func(t *testing.T) {
		mock := &mockController{
			view:            session.ViewLogin,
			ManageUsersFunc: func() error { return session.ErrInvalidTransition },
		}
		handler := NewSessionHandler(mock)

		w := performRequest(handler.ManageUsers, http.MethodPost, "/navigate/users")

		assert.Equal(t, http.StatusConflict, w.Code)

		var body gin.H
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "operation not available from the current view", body["error"])
	})

	t.Run("each navigation endpoint delegates to its transition", func(t *testing.T) {
		addUserCalled := false
		backCalled := false
		toLoginCalled := false
		mock := &mockController{
			view:                session.ViewDashboard,
			AddUserFunc:         func() error { addUserCalled = true; return nil },
			BackToDashboardFunc: func() error { backCalled = true; return nil },
			GoToLoginFunc:       func() error { toLoginCalled = true; return nil },
		}
		handler := NewSessionHandler(mock)

		w := performRequest(handler.AddUser, http.MethodPost, "/navigate/add-user")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, addUserCalled)

		w = performRequest(handler.BackToDashboard, http.MethodPost, "/navigate/dashboard")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, backCalled)

		w = performRequest(handler.GoToLogin, http.MethodPost, "/navigate/login")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, toLoginCalled)
	})
}
