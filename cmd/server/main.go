package main

import (
	"log"
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"cms_backend/internal/app/router"
	authadapters "cms_backend/internal/feature/auth/adapters"
	authhandler "cms_backend/internal/feature/auth/transport/handler"
	authusecase "cms_backend/internal/feature/auth/usecase"
	customeradapters "cms_backend/internal/feature/customer/adapters"
	customerhandler "cms_backend/internal/feature/customer/transport/handler"
	customerusecase "cms_backend/internal/feature/customer/usecase"
	"cms_backend/internal/feature/session"
	sessionhandler "cms_backend/internal/feature/session/transport/handler"
	"cms_backend/internal/infrastructure/cache"
	infradb "cms_backend/internal/infrastructure/db"
	infraredis "cms_backend/internal/infrastructure/redis"
	"cms_backend/internal/infrastructure/smtp"
)

func main() {
	// db（初期化失敗は致命的）
	db := infradb.OpenDB()

	// Redis（任意。未接続ならキャッシュなしで動作する）
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	customerRepo := customeradapters.NewCustomerGorm(db)

	// ダッシュボード集計をRedisキャッシュでラップ
	cachedRepo := cache.NewCachingCustomerRepository(rdb, 0, customerRepo, "customers")

	// 「ログイン状態を保持」キャッシュ
	credentialsPath := os.Getenv("CREDENTIALS_FILE")
	if credentialsPath == "" {
		credentialsPath = "saved_credentials.txt"
	}
	credentialStore := authadapters.NewCredentialFile(credentialsPath)

	// Usecase
	authUC := authusecase.NewAuthUsecase(cachedRepo, credentialStore)
	customerUC := customerusecase.NewCustomerUsecase(cachedRepo)

	// Notifier（SMTPリレー）
	mailer := smtp.NewMailer(smtp.LoadConfig())

	// Session controller（ビュー状態の唯一の情報源）
	ctrl := session.NewController(authUC, mailer)

	// Handler
	authH := authhandler.NewAuthHandler(ctrl)
	sessionH := sessionhandler.NewSessionHandler(ctrl)
	customerH := customerhandler.NewCustomerHandler(customerUC)

	// ルータ生成
	r := router.NewRouter(authH, sessionH, customerH, ctrl)

	// SMTP設定チェック（開発中の注意喚起）
	if os.Getenv("SMTP_HOST") == "" {
		log.Println("[WARN] SMTP_HOST is not set. Welcome and reset emails will fail to send.")
	}

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
