// Package adapters は customer フィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"cms_backend/internal/feature/customer/domain/entity"
	"cms_backend/internal/feature/customer/usecase"
)

// customerGorm は CustomerRepository インターフェースのGORM実装です。
// SQLite と PostgreSQL の両方で動作します。
type customerGorm struct {
	db *gorm.DB
}

// customerGorm が CustomerRepository を実装していることをコンパイル時に検証します。
var _ usecase.CustomerRepository = (*customerGorm)(nil)

// NewCustomerGorm は指定された gorm.DB 接続で customerGorm の新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewCustomerGorm(db *gorm.DB) *customerGorm {
	return &customerGorm{db: db}
}

// Create は顧客をデータベースに追加します。
// 同じメールアドレスの顧客が既に存在する場合、usecase.ErrEmailAlreadyExists を返します。
// INSERT は単一文のため、一意制約違反時に部分的な書き込みは残りません。
func (r *customerGorm) Create(ctx context.Context, c *entity.Customer) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		// gorm.Config{TranslateError: true} がドライバ固有の一意制約違反を変換する
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// AuthenticateByHash はメールアドレスとパスワードハッシュの完全一致で顧客を取得します。
// 一致する行がない場合、usecase.ErrCustomerNotFound を返します。
// メールアドレスは一意のため、結果は高々1件です。
func (r *customerGorm) AuthenticateByHash(ctx context.Context, email, passwordHash string) (*entity.Customer, error) {
	var c entity.Customer
	err := r.db.WithContext(ctx).
		Where("email = ? AND password_hash = ?", email, passwordHash).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCustomerNotFound
		}
		return nil, err
	}
	return &c, nil
}

// UpdatePasswordHash は指定メールアドレスの顧客のパスワードハッシュを更新します。
func (r *customerGorm) UpdatePasswordHash(ctx context.Context, email, newHash string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.Customer{}).
		Where("email = ?", email).
		Update("password_hash", newHash)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// UpdateProfile はメールアドレス以外のプロフィール項目を更新します。
func (r *customerGorm) UpdateProfile(ctx context.Context, email, firstName, lastName, phone string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.Customer{}).
		Where("email = ?", email).
		Updates(map[string]any{
			"first_name": firstName,
			"last_name":  lastName,
			"phone":      phone,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetByEmail はメールアドレスで顧客を取得します。
func (r *customerGorm) GetByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	var c entity.Customer
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCustomerNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetByID はIDで顧客を取得します。
func (r *customerGorm) GetByID(ctx context.Context, id uint) (*entity.Customer, error) {
	var c entity.Customer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCustomerNotFound
		}
		return nil, err
	}
	return &c, nil
}

// EmailExists は指定メールアドレスの顧客が存在するかを返します。
func (r *customerGorm) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Customer{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListAll は全顧客を作成日時の新しい順に返します。
// 同時刻の行は ID 降順で安定させます。
func (r *customerGorm) ListAll(ctx context.Context) ([]entity.Customer, error) {
	var customers []entity.Customer
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

// Search は氏名またはメールアドレスの大文字小文字を区別しない部分一致で顧客を検索します。
// LIKE の大文字小文字の扱いはドライバによって異なるため、LOWER で揃えます。
func (r *customerGorm) Search(ctx context.Context, term string) ([]entity.Customer, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	var customers []entity.Customer
	err := r.db.WithContext(ctx).
		Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern).
		Order("created_at DESC, id DESC").
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

// Count は顧客の総数を返します。
func (r *customerGorm) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Customer{}).Count(&count).Error
	return count, err
}

// CountCreatedWithin は直近N日間に作成された顧客数を返します。
// 期間は型付きのタイムスタンプ比較で渡し、SQL文字列への埋め込みは行いません。
func (r *customerGorm) CountCreatedWithin(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Customer{}).
		Where("created_at >= ?", cutoff).
		Count(&count).Error
	return count, err
}

// CountCreatedToday はローカル時刻の本日0時以降に作成された顧客数を返します。
func (r *customerGorm) CountCreatedToday(ctx context.Context) (int64, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Customer{}).
		Where("created_at >= ?", midnight).
		Count(&count).Error
	return count, err
}

// RecentActivity は直近に作成された顧客を新しい順に最大limit件返します。
func (r *customerGorm) RecentActivity(ctx context.Context, limit int) ([]entity.Customer, error) {
	var customers []entity.Customer
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

// Delete はIDで顧客を削除します。削除した行があったかどうかを返します。
func (r *customerGorm) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&entity.Customer{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
