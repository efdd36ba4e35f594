package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Koushikchikkond/vouchers/internal/core"
	"github.com/Koushikchikkond/vouchers/internal/gateway"
	"github.com/Koushikchikkond/vouchers/internal/log"
)

const MinPasswordLength = 6

const (
	FieldEmail    = "email"
	FieldOTP      = "otp"
	FieldPassword = "password"
)

var (
	ErrInvalidEmail     = errors.New("email address must contain @")
	ErrInvalidOTP       = errors.New("code must be exactly 6 digits")
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrPasswordMismatch = errors.New("passwords do not match")
)

var otpPattern = regexp.MustCompile(`^[0-9]{6}$`)

// ResetGateway is the part of the gateway the reset flow talks to.
type ResetGateway interface {
	RequestPasswordReset(ctx context.Context, email string) (gateway.Result, error)
	VerifyOTP(ctx context.Context, email, otp string) (gateway.Result, error)
	ResetPassword(ctx context.Context, email, otp, newPassword string) (gateway.Result, error)
}

// ResetFlow validates each step locally before calling the gateway. A step
// that fails validation makes no call.
type ResetFlow struct {
	gw     ResetGateway
	logger *log.Logger
}

func NewResetFlow(gw ResetGateway, logger *log.Logger) *ResetFlow {
	return &ResetFlow{gw: gw, logger: logger.WithComponent(log.ComponentAuth)}
}

// RequestOTP asks the backend to mail a one-time code.
func (f *ResetFlow) RequestOTP(ctx context.Context, email string) (gateway.Result, error) {
	email, err := checkEmail(email)
	if err != nil {
		return gateway.Result{}, err
	}
	res, err := f.gw.RequestPasswordReset(ctx, email)
	return f.finish(ctx, gateway.ActionRequestPasswordReset, res, err)
}

func (f *ResetFlow) VerifyOTP(ctx context.Context, email, otp string) (gateway.Result, error) {
	email, err := checkEmail(email)
	if err != nil {
		return gateway.Result{}, err
	}
	if otp, err = checkOTP(otp); err != nil {
		return gateway.Result{}, err
	}
	res, err := f.gw.VerifyOTP(ctx, email, otp)
	return f.finish(ctx, gateway.ActionVerifyOTP, res, err)
}

// ResetPassword sets newPassword once it matches confirm.
func (f *ResetFlow) ResetPassword(ctx context.Context, email, otp, newPassword, confirm string) (gateway.Result, error) {
	email, err := checkEmail(email)
	if err != nil {
		return gateway.Result{}, err
	}
	if otp, err = checkOTP(otp); err != nil {
		return gateway.Result{}, err
	}
	if len(newPassword) < MinPasswordLength {
		return gateway.Result{}, &core.ValidationError{Field: FieldPassword, Err: ErrPasswordTooShort}
	}
	if newPassword != confirm {
		return gateway.Result{}, &core.ValidationError{Field: FieldPassword, Err: ErrPasswordMismatch}
	}
	res, err := f.gw.ResetPassword(ctx, email, otp, newPassword)
	return f.finish(ctx, gateway.ActionResetPassword, res, err)
}

func (f *ResetFlow) finish(ctx context.Context, action string, res gateway.Result, err error) (gateway.Result, error) {
	if err == nil {
		err = gateway.CheckResult(action, res)
	}
	if err != nil {
		f.logger.WarnContext(ctx, "Password reset step failed",
			log.FieldAction, action,
			log.FieldError, err)
		return res, fmt.Errorf("%s: %w", action, err)
	}
	if res.Simulated {
		f.logger.WarnContext(ctx, "Password reset step simulated, nothing sent",
			log.FieldAction, action,
			log.FieldSimulated, true)
	}
	return res, nil
}

func checkEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return "", &core.ValidationError{Field: FieldEmail, Err: ErrInvalidEmail}
	}
	return email, nil
}

func checkOTP(otp string) (string, error) {
	otp = strings.TrimSpace(otp)
	if !otpPattern.MatchString(otp) {
		return "", &core.ValidationError{Field: FieldOTP, Err: ErrInvalidOTP}
	}
	return otp, nil
}
