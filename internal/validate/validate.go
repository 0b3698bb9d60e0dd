// Package validate provides the input validation rules shared by the
// session controller and the HTTP layer.
package validate

import "regexp"

// MinPasswordLength はパスワードの最低文字数を定義します。
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email reports whether s looks like a well-formed email address.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// Password reports whether s satisfies the minimum length rule.
func Password(s string) bool {
	return len(s) >= MinPasswordLength
}
