package auth

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Koushikchikkond/vouchers/internal/core"
	"github.com/Koushikchikkond/vouchers/internal/gateway"
	"github.com/Koushikchikkond/vouchers/internal/log"
)

func testLogger() *log.Logger {
	return log.New(log.Config{Output: io.Discard, Component: "test"})
}

func TestAuthenticate(t *testing.T) {
	a, err := newAuthenticator("koushik", "Koushik", "s3cret!", bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{"valid", "koushik", "s3cret!", false},
		{"username is trimmed", "  koushik ", "s3cret!", false},
		{"wrong password", "koushik", "s3cret", true},
		{"wrong username", "Koushik", "s3cret!", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := a.Authenticate(tt.username, tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				assert.Empty(t, id.Username)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Identity{Username: "koushik", DisplayName: "Koushik"}, id)
		})
	}
}

func TestNewAuthenticator(t *testing.T) {
	_, err := NewAuthenticator("koushik", "", "")
	assert.ErrorIs(t, err, ErrPasswordNotSet)

	_, err = NewAuthenticator(" ", "", "pw")
	assert.Error(t, err)

	a, err := newAuthenticator("koushik", "", "pw", bcrypt.MinCost)
	require.NoError(t, err)
	id, err := a.Authenticate("koushik", "pw")
	require.NoError(t, err)
	assert.Equal(t, "koushik", id.DisplayName, "display name falls back to username")
	assert.NotContains(t, string(a.hash), "pw")
}

func TestResetFlow_Validation(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no gateway call is expected for any of these
	flow := NewResetFlow(NewMockResetGateway(ctrl), testLogger())

	tests := []struct {
		name  string
		call  func() error
		field string
		want  error
	}{
		{"email without at", func() error { _, err := flow.RequestOTP(ctx, "user.example.com"); return err }, FieldEmail, ErrInvalidEmail},
		{"short otp", func() error { _, err := flow.VerifyOTP(ctx, "a@b.c", "12345"); return err }, FieldOTP, ErrInvalidOTP},
		{"non digit otp", func() error { _, err := flow.VerifyOTP(ctx, "a@b.c", "12a456"); return err }, FieldOTP, ErrInvalidOTP},
		{"long otp", func() error { _, err := flow.VerifyOTP(ctx, "a@b.c", "1234567"); return err }, FieldOTP, ErrInvalidOTP},
		{"short password", func() error {
			_, err := flow.ResetPassword(ctx, "a@b.c", "123456", "abc", "abc")
			return err
		}, FieldPassword, ErrPasswordTooShort},
		{"mismatch", func() error {
			_, err := flow.ResetPassword(ctx, "a@b.c", "123456", "abcdef", "abcdeg")
			return err
		}, FieldPassword, ErrPasswordMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			var ve *core.ValidationError
			require.True(t, errors.As(err, &ve), "want ValidationError, got %v", err)
			assert.Equal(t, tt.field, ve.Field)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestResetFlow_Steps(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gw := NewMockResetGateway(ctrl)
	flow := NewResetFlow(gw, testLogger())
	ok := gateway.Result{Status: gateway.StatusSuccess, Message: "OTP sent"}

	gomock.InOrder(
		gw.EXPECT().RequestPasswordReset(gomock.Any(), "a@b.c").Return(ok, nil),
		gw.EXPECT().VerifyOTP(gomock.Any(), "a@b.c", "123456").Return(gateway.Result{Status: gateway.StatusSuccess}, nil),
		gw.EXPECT().ResetPassword(gomock.Any(), "a@b.c", "123456", "newpass").Return(gateway.Result{Status: gateway.StatusSuccess}, nil),
	)

	res, err := flow.RequestOTP(ctx, " a@b.c ")
	require.NoError(t, err)
	assert.Equal(t, "OTP sent", res.Message)

	_, err = flow.VerifyOTP(ctx, "a@b.c", "123456")
	require.NoError(t, err)

	_, err = flow.ResetPassword(ctx, "a@b.c", "123456", "newpass", "newpass")
	require.NoError(t, err)
}

func TestResetFlow_GatewayFailures(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gw := NewMockResetGateway(ctrl)
	flow := NewResetFlow(gw, testLogger())

	gw.EXPECT().VerifyOTP(gomock.Any(), "a@b.c", "000000").
		Return(gateway.Result{Status: "error", Message: "Invalid OTP"}, nil)
	_, err := flow.VerifyOTP(ctx, "a@b.c", "000000")
	var ae *gateway.ApplicationError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "Invalid OTP", ae.Message)

	gw.EXPECT().RequestPasswordReset(gomock.Any(), "a@b.c").
		Return(gateway.Result{}, gateway.ErrNotConfigured)
	_, err = flow.RequestOTP(ctx, "a@b.c")
	assert.ErrorIs(t, err, gateway.ErrNotConfigured)
}
