package session

import (
	"context"

	"cms_backend/internal/feature/customer/domain/entity"
)

// IdentityService は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（controller）が定義します。
type IdentityService interface {
	// Authenticate はメールアドレスとパスワードで顧客を認証します。
	Authenticate(ctx context.Context, email, password string) (*entity.Customer, error)

	// Register は新規顧客を登録し、採番されたIDを返します。
	Register(ctx context.Context, firstName, lastName, email, phone, password string) (uint, error)

	// ResetPassword は仮パスワードを発行して顧客のハッシュを置き換えます。
	ResetPassword(ctx context.Context, email string) (string, error)

	// ChangePassword は現在のパスワードを検証して新しいパスワードに更新します。
	ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error

	// CustomerByEmail はメールアドレスで顧客を取得します。
	CustomerByEmail(ctx context.Context, email string) (*entity.Customer, error)

	// EmailExists は指定メールアドレスの顧客が存在するかを返します。
	EmailExists(ctx context.Context, email string) (bool, error)

	// SaveRememberedCredential / LoadRememberedCredential / ClearRememberedCredential
	// は「ログイン状態を保持」キャッシュへのパススルーです。
	SaveRememberedCredential(email, password string) error
	LoadRememberedCredential() (string, string, error)
	ClearRememberedCredential() error
}

// Notifier is the external email-delivery collaborator invoked on
// registration and password reset. Calls block until the transport returns;
// failures never roll back the triggering action.
type Notifier interface {
	// SendWelcomeEmail sends the post-registration welcome mail.
	SendWelcomeEmail(ctx context.Context, email, fullName string, customerID uint) error

	// SendPasswordResetEmail delivers the plaintext temporary password.
	SendPasswordResetEmail(ctx context.Context, email, tempPassword, fullName string) error
}
