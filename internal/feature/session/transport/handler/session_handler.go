// Package handler はセッション状態のHTTPハンドラーを提供します。
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cms_backend/internal/api"
	"cms_backend/internal/feature/customer/domain/entity"
	"cms_backend/internal/feature/session"
)

// Controller はビュー遷移と現在状態の参照を定義します。
// Goの慣例に従い、インターフェースはコンシューマー（handler）が定義します。
type Controller interface {
	CurrentView() session.View
	CurrentCustomer() *entity.Customer
	RememberedCredential() (email, password string)
	GoToRegister() error
	GoToLogin() error
	ManageUsers() error
	AddUser() error
	BackToDashboard() error
}

// SessionHandler は現在のビューとナビゲーション操作を公開します。
// 表示そのものは外部のプレゼンテーション層の責務で、ここでは状態だけを返します。
type SessionHandler struct {
	sessions Controller
}

// NewSessionHandler はSessionHandlerの新しいインスタンスを生成します。
func NewSessionHandler(sessions Controller) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Current は現在のビューとログイン中の顧客を返します。
// ログイン画面では保存済み資格情報も返し、フォームの初期値に使います。
func (h *SessionHandler) Current(c *gin.Context) {
	view := h.sessions.CurrentView()
	resp := api.SessionResponse{View: view.String()}

	if customer := h.sessions.CurrentCustomer(); customer != nil {
		resp.Customer = &api.CustomerResponse{
			ID:        customer.ID,
			FirstName: customer.FirstName,
			LastName:  customer.LastName,
			Email:     customer.Email,
			Phone:     customer.Phone,
			CreatedAt: customer.CreatedAt,
		}
	}
	if view == session.ViewLogin {
		resp.RememberedEmail, resp.RememberedPassword = h.sessions.RememberedCredential()
	}

	c.JSON(http.StatusOK, resp)
}

// GoToRegister はログイン画面から登録画面への遷移を処理します。
func (h *SessionHandler) GoToRegister(c *gin.Context) {
	h.navigate(c, h.sessions.GoToRegister)
}

// GoToLogin は登録画面からログイン画面への遷移を処理します。登録は行いません。
func (h *SessionHandler) GoToLogin(c *gin.Context) {
	h.navigate(c, h.sessions.GoToLogin)
}

// ManageUsers はダッシュボードから顧客一覧への遷移を処理します。
func (h *SessionHandler) ManageUsers(c *gin.Context) {
	h.navigate(c, h.sessions.ManageUsers)
}

// AddUser はログイン中のビューから登録画面への遷移を処理します。
func (h *SessionHandler) AddUser(c *gin.Context) {
	h.navigate(c, h.sessions.AddUser)
}

// BackToDashboard は顧客一覧からダッシュボードへの遷移を処理します。
func (h *SessionHandler) BackToDashboard(c *gin.Context) {
	h.navigate(c, h.sessions.BackToDashboard)
}

func (h *SessionHandler) navigate(c *gin.Context, transition func() error) {
	if err := transition(); err != nil {
		if errors.Is(err, session.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "operation not available from the current view"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, api.SessionResponse{View: h.sessions.CurrentView().String()})
}
