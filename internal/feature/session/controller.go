package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"cms_backend/internal/feature/customer/domain/entity"
	"cms_backend/internal/validate"
)

// Controller は「現在どのビューが有効で、誰がログインしているか」の唯一の
// 情報源です。ユーザー操作による遷移はすべてここを経由し、ストアへの変更は
// IdentityService を通してのみ行います。
//
// HTTP サーフェスからの呼び出しが重ならないよう mutex で直列化します。
// 論理的なアクターは常に1人です。
type Controller struct {
	mu       sync.Mutex
	identity IdentityService
	notifier Notifier

	view View
	// current はログイン中の顧客のスナップショットコピーです。ストアの行への
	// 生きた参照ではなく、ログアウト系ビューに入ると必ず nil に戻ります。
	current *entity.Customer
}

// NewController は初期ビュー（ログイン画面）の Controller を生成します。
func NewController(identity IdentityService, notifier Notifier) *Controller {
	return &Controller{
		identity: identity,
		notifier: notifier,
		view:     ViewLogin,
	}
}

// CurrentView は現在有効なビューを返します。
func (c *Controller) CurrentView() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// CurrentCustomer はログイン中の顧客のコピーを返します。未ログインの場合は nil です。
func (c *Controller) CurrentCustomer() *entity.Customer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	snapshot := *c.current
	return &snapshot
}

// IsLoggedIn は現在のビューがログイン系かどうかを返します。
func (c *Controller) IsLoggedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.LoggedIn()
}

// RememberedCredential はログイン画面の初期値として保存済み資格情報を返します。
// ログイン画面以外では読み出しません。キャッシュの読み込み失敗はログに残す
// だけで、空のペアとして扱います。
func (c *Controller) RememberedCredential() (email, password string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view != ViewLogin {
		return "", ""
	}
	email, password, err := c.identity.LoadRememberedCredential()
	if err != nil {
		slog.Warn("failed to load remembered credential", "error", err)
		return "", ""
	}
	return email, password
}

// Login はログイン画面からの認証を処理します。成功するとダッシュボードへ
// 遷移し、remember が指定されていれば資格情報を保存します。保存の失敗は
// ログインの成否に影響しません。
func (c *Controller) Login(ctx context.Context, email, password string, remember bool) (*entity.Customer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view != ViewLogin {
		return nil, ErrInvalidTransition
	}
	if email == "" || password == "" {
		return nil, ValidationError("please enter both email and password")
	}

	customer, err := c.identity.Authenticate(ctx, email, password)
	if err != nil {
		// 認証失敗・ストア障害とも状態遷移なし
		return nil, err
	}

	snapshot := *customer
	c.current = &snapshot
	c.view = ViewDashboard

	if remember {
		if err := c.identity.SaveRememberedCredential(email, password); err != nil {
			slog.Warn("failed to save remembered credential", "error", err)
		}
	}

	result := *customer
	return &result, nil
}

// GoToRegister はログイン画面から登録画面へ遷移します。
func (c *Controller) GoToRegister() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view != ViewLogin {
		return ErrInvalidTransition
	}
	c.view = ViewRegister
	return nil
}

// GoToLogin は登録画面から登録せずにログイン画面へ戻ります。
func (c *Controller) GoToLogin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view != ViewRegister {
		return ErrInvalidTransition
	}
	c.view = ViewLogin
	return nil
}

// AddUser はログイン中のビューから登録画面へ遷移します。
func (c *Controller) AddUser() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.view.LoggedIn() {
		return ErrInvalidTransition
	}
	c.view = ViewRegister
	// ログアウト系ビューに入るため、顧客参照は保持しない
	c.current = nil
	return nil
}

// SubmitRegistration は登録画面からの新規登録を処理します。検証はストアに
// 到達する前にここで行います。成功するとログイン画面へ遷移し、ウェルカム
// メールを送信します。メール送信の失敗は登録の成否に影響せず、ログに残す
// だけです。
func (c *Controller) SubmitRegistration(ctx context.Context, firstName, lastName, email, phone, password, confirmPassword string) (uint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view != ViewRegister {
		return 0, ErrInvalidTransition
	}
	if firstName == "" || lastName == "" || email == "" || phone == "" || password == "" || confirmPassword == "" {
		return 0, ValidationError("please fill in all required fields")
	}
	if !validate.Email(email) {
		return 0, ValidationError("please enter a valid email address")
	}
	if password != confirmPassword {
		return 0, ValidationError("passwords do not match")
	}
	if !validate.Password(password) {
		return 0, ValidationError(fmt.Sprintf("password must be at least %d characters long", validate.MinPasswordLength))
	}

	id, err := c.identity.Register(ctx, firstName, lastName, email, phone, password)
	if err != nil {
		return 0, err
	}

	c.view = ViewLogin
	c.current = nil

	if err := c.notifier.SendWelcomeEmail(ctx, email, firstName+" "+lastName, id); err != nil {
		slog.Warn("failed to send welcome email", "email", email, "error", err)
	}

	return id, nil
}

// Logout はログイン中のビューからログイン画面へ戻ります。顧客参照を破棄し、
// 保存済み資格情報も削除します。キャッシュ削除の失敗はログに残すだけです。
func (c *Controller) Logout() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.view.LoggedIn() {
		return ErrInvalidTransition
	}
	c.view = ViewLogin
	c.current = nil
	if err := c.identity.ClearRememberedCredential(); err != nil {
		slog.Warn("failed to clear remembered credential", "error", err)
	}
	return nil
}

// ManageUsers はダッシュボードから顧客一覧へ遷移します。
func (c *Controller) ManageUsers() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view != ViewDashboard {
		return ErrInvalidTransition
	}
	c.view = ViewUsersList
	return nil
}

// BackToDashboard は顧客一覧からダッシュボードへ戻ります。
func (c *Controller) BackToDashboard() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view != ViewUsersList {
		return ErrInvalidTransition
	}
	c.view = ViewDashboard
	return nil
}

// ForgotPassword はログイン画面のサブフローで、ビューは遷移しません。
// メールアドレスを検証して存在を確認し、仮パスワードを発行してメールで
// 送信します。検証エラーも配送エラーもビューを変えずに呼び出し元へ返します。
// 配送に失敗した時点でパスワードは既に再発行されています。
func (c *Controller) ForgotPassword(ctx context.Context, email string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view != ViewLogin {
		return ErrInvalidTransition
	}
	if email == "" {
		return ValidationError("please enter your email address")
	}
	if !validate.Email(email) {
		return ValidationError("please enter a valid email address")
	}

	exists, err := c.identity.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if !exists {
		return ErrEmailNotRegistered
	}

	customer, err := c.identity.CustomerByEmail(ctx, email)
	if err != nil {
		return err
	}

	temp, err := c.identity.ResetPassword(ctx, email)
	if err != nil {
		return err
	}

	if err := c.notifier.SendPasswordResetEmail(ctx, email, temp, customer.FullName()); err != nil {
		slog.Warn("failed to send password reset email", "email", email, "error", err)
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	return nil
}

// ChangePassword はログイン中の顧客のパスワードを変更します。
func (c *Controller) ChangePassword(ctx context.Context, currentPassword, newPassword, confirmPassword string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.view.LoggedIn() || c.current == nil {
		return ErrNotLoggedIn
	}
	if currentPassword == "" || newPassword == "" || confirmPassword == "" {
		return ValidationError("please fill in all password fields")
	}
	if newPassword != confirmPassword {
		return ValidationError("new passwords do not match")
	}
	if !validate.Password(newPassword) {
		return ValidationError(fmt.Sprintf("password must be at least %d characters long", validate.MinPasswordLength))
	}

	return c.identity.ChangePassword(ctx, c.current.Email, currentPassword, newPassword)
}
