// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"

	"cms_backend/internal/feature/customer/domain/entity"
)

const (
	// tempPasswordLength は仮パスワードの文字数を定義します。
	tempPasswordLength = 8

	// tempPasswordAlphabet は仮パスワードに使用する62文字の集合です。
	tempPasswordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// CustomerStore は認証処理が必要とする顧客ストア操作を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type CustomerStore interface {
	// Create は新しい顧客をストレージに永続化します。
	// 同じメールアドレスの顧客が既に存在する場合、エラーを返します。
	Create(ctx context.Context, c *entity.Customer) error

	// AuthenticateByHash はメールアドレスとパスワードハッシュの完全一致で顧客を取得します。
	AuthenticateByHash(ctx context.Context, email, passwordHash string) (*entity.Customer, error)

	// UpdatePasswordHash は指定メールアドレスの顧客のハッシュを更新します。
	UpdatePasswordHash(ctx context.Context, email, newHash string) (bool, error)

	// GetByEmail はメールアドレスで顧客を取得します。
	GetByEmail(ctx context.Context, email string) (*entity.Customer, error)

	// EmailExists は指定メールアドレスの顧客が存在するかを返します。
	EmailExists(ctx context.Context, email string) (bool, error)
}

// authUsecase は認証ビジネスロジックを実装します。
// 生のパスワードをハッシュのドメインに変換し、ストアへ委譲します。
type authUsecase struct {
	customers   CustomerStore
	credentials CredentialStore
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(customers CustomerStore, credentials CredentialStore) *authUsecase {
	return &authUsecase{
		customers:   customers,
		credentials: credentials,
	}
}

// HashPassword はパスワードのSHA-256ダイジェストを16進小文字で返します。
// 同じ入力は常に同じダイジェストになります。ソルトは使用しません（保存済み
// ハッシュとの互換性を維持するための仕様）。
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Authenticate はメールアドレスとパスワードで顧客を認証します。
// メールアドレス未登録とパスワード不一致は区別せず、どちらも
// ErrInvalidCredentials を返します。
func (u *authUsecase) Authenticate(ctx context.Context, email, password string) (*entity.Customer, error) {
	c, err := u.customers.AuthenticateByHash(ctx, email, HashPassword(password))
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return c, nil
}

// Register はハッシュ化されたパスワードで新規顧客を登録し、採番されたIDを返します。
// メールアドレスが重複している場合、ErrEmailAlreadyExists を伝播します。
func (u *authUsecase) Register(ctx context.Context, firstName, lastName, email, phone, password string) (uint, error) {
	c := &entity.Customer{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		Phone:        phone,
		PasswordHash: HashPassword(password),
	}
	if err := u.customers.Create(ctx, c); err != nil {
		return 0, err
	}
	return c.ID, nil
}

// ResetPassword は8文字の仮パスワードを生成して顧客のハッシュを置き換え、
// 平文の仮パスワードを一度だけ返します。平文はどこにも永続化されません。
// 呼び出し側が配送（Notifier）に責任を持ち、ログにも残してはいけません。
func (u *authUsecase) ResetPassword(ctx context.Context, email string) (string, error) {
	temp, err := generateTempPassword()
	if err != nil {
		return "", fmt.Errorf("failed to generate temporary password: %w", err)
	}
	updated, err := u.customers.UpdatePasswordHash(ctx, email, HashPassword(temp))
	if err != nil {
		return "", err
	}
	if !updated {
		return "", ErrCustomerNotFound
	}
	return temp, nil
}

// ChangePassword は現在のパスワードを検証したうえで新しいパスワードに更新します。
// 現在のパスワードが一致しない場合、ErrCurrentPasswordWrong を返します。
func (u *authUsecase) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	if _, err := u.customers.AuthenticateByHash(ctx, email, HashPassword(currentPassword)); err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			return ErrCurrentPasswordWrong
		}
		return err
	}
	updated, err := u.customers.UpdatePasswordHash(ctx, email, HashPassword(newPassword))
	if err != nil {
		return err
	}
	if !updated {
		return ErrCustomerNotFound
	}
	return nil
}

// CustomerByEmail はメールアドレスで顧客を取得します。
func (u *authUsecase) CustomerByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	return u.customers.GetByEmail(ctx, email)
}

// EmailExists は指定メールアドレスの顧客が存在するかを返します。
func (u *authUsecase) EmailExists(ctx context.Context, email string) (bool, error) {
	return u.customers.EmailExists(ctx, email)
}

// SaveRememberedCredential は「ログイン状態を保持」用の資格情報を保存します。
func (u *authUsecase) SaveRememberedCredential(email, password string) error {
	return u.credentials.Save(email, password)
}

// LoadRememberedCredential は保存済みの資格情報を読み込みます。
// 未保存の場合は空のペアを返します。
func (u *authUsecase) LoadRememberedCredential() (string, string, error) {
	return u.credentials.Load()
}

// ClearRememberedCredential は保存済みの資格情報を削除します。
func (u *authUsecase) ClearRememberedCredential() error {
	return u.credentials.Clear()
}

// generateTempPassword は [A-Za-z0-9] から一様に選んだ8文字を返します。
func generateTempPassword() (string, error) {
	buf := make([]byte, tempPasswordLength)
	max := big.NewInt(int64(len(tempPasswordAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = tempPasswordAlphabet[n.Int64()]
	}
	return string(buf), nil
}
