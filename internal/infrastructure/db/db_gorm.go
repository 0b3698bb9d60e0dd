package db

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cms_backend/internal/feature/customer/domain/entity"
)

// OpenDB はデータベース接続を開き、スキーマを適用して返します。
// 既定は単一ファイルのSQLiteで、DB_DRIVER=postgres のときは DATABASE_URL の
// PostgreSQL に接続します。初期化に失敗した場合、ストアなしでは動作できない
// ため致命的エラーとして終了します。
func OpenDB() *gorm.DB {
	cfg := &gorm.Config{
		// ドライバ固有の一意制約違反エラーを gorm.ErrDuplicatedKey に変換する
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)

	switch os.Getenv("DB_DRIVER") {
	case "postgres":
		dsn := os.Getenv("DATABASE_URL")
		// 起動直後はDBコンテナが立ち上がりきっていないことがあるためリトライする
		deadline := time.Now().Add(60 * time.Second)
		for {
			db, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				break
			}
			if time.Now().After(deadline) {
				log.Fatalf("DB connect failed after 60s: %v", err)
			}
			log.Printf("DB connect failed, retrying...: %v", err)
			time.Sleep(3 * time.Second)
		}
	default:
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "customers.db"
		}
		db, err = gorm.Open(sqlite.Open(path), cfg)
		if err != nil {
			log.Fatalf("DB open failed: %v", err)
		}
	}

	// マイグレーション（customers テーブル）
	if err := db.AutoMigrate(&entity.Customer{}); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
