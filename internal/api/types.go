// Package api defines the request and response types shared by the HTTP
// transport layer.
package api

import "time"

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the uniform success payload for operations with no data.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginRequest はログイン操作のリクエストボディです。
// フィールドの検証はセッションコントローラが行い、具体的なエラーメッセージを
// 返すため、bindingタグでの検証は行いません。
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// SignupRequest は新規登録操作のリクエストボディです。
type SignupRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// SignupResponse returns the id assigned to the newly registered customer.
type SignupResponse struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
}

// ForgotPasswordRequest はパスワード再発行のリクエストボディです。
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ChangePasswordRequest はパスワード変更のリクエストボディです。
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// UpdateProfileRequest updates the non-email profile fields of a customer.
type UpdateProfileRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
}

// CustomerResponse is the transport representation of a customer record.
// The password hash is never exposed.
type CustomerResponse struct {
	ID        uint      `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionResponse describes the current view and, when logged in, the
// current customer. On the login view it carries the remembered credential
// so the form can be prepopulated.
type SessionResponse struct {
	View               string            `json:"view"`
	Customer           *CustomerResponse `json:"customer,omitempty"`
	RememberedEmail    string            `json:"remembered_email,omitempty"`
	RememberedPassword string            `json:"remembered_password,omitempty"`
}

// StatsResponse carries the dashboard aggregates.
type StatsResponse struct {
	TotalCustomers int64              `json:"total_customers"`
	RecentSignups  int64              `json:"recent_signups"`
	TodaySignups   int64              `json:"today_signups"`
	RecentActivity []CustomerResponse `json:"recent_activity"`
}
