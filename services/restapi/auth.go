package restapi

import (
	"context"

	"github.com/AkashQuad/trackqfrontend/core"
)

type (
	LoginForm struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	// RegisterForm completes self sign-up after the mailed code is verified.
	RegisterForm struct {
		Email    string `json:"email" validate:"required,email"`
		Username string `json:"username" validate:"required,min=2"`
		OTP      string `json:"otp" validate:"required"`
		Password string `json:"password" validate:"required,min=8"`
	}

	ResetPasswordForm struct {
		Email       string `json:"email" validate:"required,email"`
		OTP         string `json:"otp" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required,min=8"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}
)

func (f *LoginForm) Validate() error {
	f.Email = core.CleanString(f.Email, true /* lower */)
	return core.Validate.Struct(f)
}

func (f *RegisterForm) Validate() error {
	f.Email = core.CleanString(f.Email, true /* lower */)
	f.Username = core.CleanString(f.Username)
	return core.Validate.Struct(f)
}

func (f *ResetPasswordForm) Validate() error {
	f.Email = core.CleanString(f.Email, true /* lower */)
	return core.Validate.Struct(f)
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, form LoginForm) (string, error) {
	var resp LoginResponse
	if err := c.post(ctx, "/api/Auth/login", form, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// SendOTP mails a one-time code as the first sign-up step.
func (c *Client) SendOTP(ctx context.Context, email, username string) error {
	body := map[string]string{"email": email, "username": username}
	return c.post(ctx, "/api/auth/send-otp", body, nil)
}

// ForgotPassword mails a one-time code for a password reset.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.post(ctx, "/api/auth/forgot-password", map[string]string{"email": email}, nil)
}

// VerifyOTP checks a mailed code without consuming it.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) error {
	return c.post(ctx, "/api/auth/verify-otp", map[string]string{"email": email, "otp": otp}, nil)
}

// Register completes sign-up with the verified code and chosen password.
func (c *Client) Register(ctx context.Context, form RegisterForm) error {
	return c.post(ctx, "/api/auth/register", form, nil)
}

// ResetPassword sets a new password using a verified code.
func (c *Client) ResetPassword(ctx context.Context, form ResetPasswordForm) error {
	return c.post(ctx, "/api/auth/reset-password", form, nil)
}
