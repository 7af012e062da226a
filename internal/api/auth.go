package api

import (
	"context"
	"net/http"

	"gamestore/internal/domain/model"
)

type RegisterRequest struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse は register/login 共通の返却。
type AuthResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	var out AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", nil, req, &out, "Failed to register user"); err != nil {
		return AuthResponse{}, err
	}
	return out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	var out AuthResponse
	req := loginRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil, req, &out, "Failed to log in"); err != nil {
		return AuthResponse{}, err
	}
	return out, nil
}

// RequestPasswordReset はリセットメール送信依頼。返るのはメッセージのみ。
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	var out messageResponse
	body := struct {
		Email string `json:"email"`
	}{Email: email}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/reset-password-request", nil, body, &out, "Failed to request password reset"); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	var out messageResponse
	req := resetPasswordRequest{Token: token, NewPassword: newPassword}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/reset-password", nil, req, &out, "Failed to reset password"); err != nil {
		return "", err
	}
	return out.Message, nil
}
