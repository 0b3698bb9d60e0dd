package router

import (
	"github.com/gin-gonic/gin"

	authhandler "cms_backend/internal/feature/auth/transport/handler"
	customerhandler "cms_backend/internal/feature/customer/transport/handler"
	sessionhandler "cms_backend/internal/feature/session/transport/handler"
	"cms_backend/internal/infrastructure/middleware"
)

func NewRouter(auth *authhandler.AuthHandler, sessions *sessionhandler.SessionHandler,
	customers *customerhandler.CustomerHandler, checker middleware.SessionChecker) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", Health)
	// 現在のビューとログイン中の顧客
	r.GET("/session", sessions.Current)
	// ログイン（成功でダッシュボードへ遷移）
	r.POST("/login", auth.Login)
	// 新規登録（登録画面からのみ）
	r.POST("/signup", auth.Signup)
	// ログアウト
	r.POST("/logout", auth.Logout)
	// パスワード再発行（ログイン画面のサブフロー）
	r.POST("/password/forgot", auth.ForgotPassword)
	// パスワード変更（要ログイン、コントローラ側で検証）
	r.POST("/password/change", auth.ChangePassword)
	// ビュー遷移
	r.POST("/navigate/register", sessions.GoToRegister)
	r.POST("/navigate/login", sessions.GoToLogin)
	r.POST("/navigate/users", sessions.ManageUsers)
	r.POST("/navigate/add-user", sessions.AddUser)
	r.POST("/navigate/dashboard", sessions.BackToDashboard)

	// 顧客データはログイン中のビューからのみ到達できる
	// middleware.LoginRequired がセッションコントローラの状態を確認する
	gated := r.Group("/")
	gated.Use(middleware.LoginRequired(checker))
	{
		gated.GET("/customers", customers.List)
		gated.GET("/customers/export", customers.Export)
		gated.GET("/customers/:id", customers.Get)
		gated.PUT("/customers/profile", customers.UpdateProfile)
		gated.DELETE("/customers/:id", customers.Delete)
		gated.GET("/dashboard/stats", customers.Stats)
	}

	return r
}

// Health は死活監視用のエンドポイントです。
func Health(c *gin.Context) {
	// キャッシュされないように明示
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case "HEAD":
		c.Status(200)
	case "OPTIONS":
		c.Status(204)
	default:
		c.JSON(200, gin.H{"status": "ok"})
	}
}
