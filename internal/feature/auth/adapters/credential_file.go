// Package adapters はauthフィーチャーの永続化実装を提供します。
package adapters

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"cms_backend/internal/feature/auth/usecase"
)

// credentialFile は CredentialStore インターフェースのファイル実装です。
// 1行目にメールアドレス、2行目にパスワードを平文で保持する2行のテキスト
// ファイルで、保存は常にファイル全体の上書きです。
type credentialFile struct {
	path string
}

// credentialFile が CredentialStore を実装していることをコンパイル時に検証します。
var _ usecase.CredentialStore = (*credentialFile)(nil)

// NewCredentialFile は指定パスの credentialFile の新しいインスタンスを生成します。
func NewCredentialFile(path string) *credentialFile {
	return &credentialFile{path: path}
}

// Save は資格情報のペアでファイル全体を置き換えます。
func (s *credentialFile) Save(email, password string) error {
	return os.WriteFile(s.path, []byte(email+"\n"+password), 0o600)
}

// Load は保存済みの資格情報を読み込みます。
// ファイルが存在しない、または2行に満たない場合は空のペアを返します。
func (s *credentialFile) Load() (string, string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", "", nil
		}
		return "", "", err
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) < 2 {
		// 壊れたキャッシュは空として扱う
		return "", "", nil
	}
	return strings.TrimSpace(lines[0]), strings.TrimSpace(lines[1]), nil
}

// Clear は保存済みの資格情報を削除します。未保存の場合は何もしません。
func (s *credentialFile) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
