// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"cms_backend/internal/api"
	authusecase "cms_backend/internal/feature/auth/usecase"
	"cms_backend/internal/feature/customer/domain/entity"
	customerusecase "cms_backend/internal/feature/customer/usecase"
	"cms_backend/internal/feature/session"
)

// SessionController は認証関連のユーザー操作を定義します。
// Goの慣例に従い、インターフェースはプロバイダー（session）ではなくコンシューマー（handler）が定義します。
type SessionController interface {
	// Login はログイン画面からの認証を処理します。
	Login(ctx context.Context, email, password string, remember bool) (*entity.Customer, error)
	// SubmitRegistration は登録画面からの新規登録を処理します。
	SubmitRegistration(ctx context.Context, firstName, lastName, email, phone, password, confirmPassword string) (uint, error)
	// Logout はログイン画面へ戻り、顧客参照と保存済み資格情報を破棄します。
	Logout() error
	// ForgotPassword は仮パスワードを発行してメールで送信します。
	ForgotPassword(ctx context.Context, email string) error
	// ChangePassword はログイン中の顧客のパスワードを変更します。
	ChangePassword(ctx context.Context, currentPassword, newPassword, confirmPassword string) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// すべての操作をセッションコントローラへ委譲し、ドメインエラーを
// ユーザー向けのレスポンスに変換します。
type AuthHandler struct {
	sessions SessionController
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewAuthHandler(sessions SessionController) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Login はログインAPIエンドポイントを処理します。
// - 認証失敗時は401を返却（メール未登録とパスワード誤りは区別しない）
// - 検証エラー時は400を返却
// - 成功時はダッシュボードへ遷移し、顧客情報付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login request malformed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	customer, err := h.sessions.Login(c.Request.Context(), req.Email, req.Password, req.Remember)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、認証失敗の詳細は公開しない
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	slog.Info("login successful", "email", customer.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, toCustomerResponse(customer))
}

// Signup は新規登録APIエンドポイントを処理します。
// - 検証エラー時は400を返却
// - メールアドレス重複時は409を返却
// - 成功時は採番されたID付きで201を返却
func (h *AuthHandler) Signup(c *gin.Context) {
	var req api.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup request malformed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	id, err := h.sessions.SubmitRegistration(c.Request.Context(),
		req.FirstName, req.LastName, req.Email, req.Phone, req.Password, req.ConfirmPassword)
	if err != nil {
		slog.Warn("signup failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	slog.Info("signup successful", "email", req.Email, "customer_id", id)
	c.JSON(http.StatusCreated, api.SignupResponse{ID: id, Message: "account created successfully"})
}

// Logout はログアウトAPIエンドポイントを処理します。
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "logged out"})
}

// ForgotPassword はパスワード再発行APIエンドポイントを処理します。
// ビューは遷移しません。仮パスワード自体はレスポンスにもログにも含めません。
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req api.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.sessions.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		slog.Warn("password reset failed", "error", err, "email", req.Email)
		writeError(c, err)
		return
	}
	slog.Info("password reset email sent", "email", req.Email)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "password reset email sent"})
}

// ChangePassword はパスワード変更APIエンドポイントを処理します。
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req api.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.sessions.ChangePassword(c.Request.Context(),
		req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "password changed successfully"})
}

// writeError はドメインエラーをHTTPステータスとユーザー向けメッセージに変換します。
func writeError(c *gin.Context, err error) {
	switch {
	case session.IsValidationError(err):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, authusecase.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid email or password"})
	case errors.Is(err, authusecase.ErrCurrentPasswordWrong):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "current password is incorrect"})
	case errors.Is(err, customerusecase.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "email address already registered"})
	case errors.Is(err, session.ErrEmailNotRegistered):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "email address not found"})
	case errors.Is(err, session.ErrDeliveryFailed):
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "failed to send email, please try again later"})
	case errors.Is(err, session.ErrNotLoggedIn):
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "login required"})
	case errors.Is(err, session.ErrInvalidTransition):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "operation not available from the current view"})
	default:
		slog.Error("unexpected error", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	}
}

func toCustomerResponse(cu *entity.Customer) api.CustomerResponse {
	return api.CustomerResponse{
		ID:        cu.ID,
		FirstName: cu.FirstName,
		LastName:  cu.LastName,
		Email:     cu.Email,
		Phone:     cu.Phone,
		CreatedAt: cu.CreatedAt,
	}
}
