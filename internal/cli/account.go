package cli

import (
	"context"
	"fmt"
	"strings"
	"time"
)

func (r *Runner) runLogin(ctx context.Context, app *App, args []string) error {
	fs := r.flagSet("login")
	username := fs.String("u", app.Config.Username, "Username")
	password := fs.String("p", "", "Password (read from stdin when omitted)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if *password == "" {
		fmt.Fprint(r.Stdout, "Password: ")
		line, err := r.readLine()
		if err != nil {
			return usageError("a password is required")
		}
		*password = line
	}

	s, err := app.Sessions.Login(ctx, strings.TrimSpace(*username), *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.Stdout, "Welcome, %s\n", s.DisplayName)
	return nil
}

func (r *Runner) runLogout(ctx context.Context, app *App, args []string) error {
	if err := parseFlags(r.flagSet("logout"), args); err != nil {
		return err
	}
	if err := app.Sessions.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(r.Stdout, "Logged out.")
	return nil
}

func (r *Runner) runWhoami(ctx context.Context, app *App, args []string) error {
	if err := parseFlags(r.flagSet("whoami"), args); err != nil {
		return err
	}
	s, err := app.Session(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.Stdout, "%s (%s), signed in %s\n",
		s.Username, s.DisplayName, s.StartedAt.Local().Format(time.DateTime))
	return nil
}

func (r *Runner) runResetPassword(ctx context.Context, app *App, args []string) error {
	const usage = "usage: vouchers reset-password request|verify|set -email ADDRESS [-otp CODE] [-password NEW -confirm NEW]"
	if len(args) < 1 {
		return usageError(usage)
	}

	fs := r.flagSet("reset-password " + args[0])
	email := fs.String("email", "", "Account email address")
	otp := fs.String("otp", "", "6-digit code from the reset email")
	password := fs.String("password", "", "New password")
	confirmPw := fs.String("confirm", "", "New password, again")
	if err := parseFlags(fs, args[1:]); err != nil {
		return err
	}

	switch args[0] {
	case "request":
		res, err := app.Reset.RequestOTP(ctx, *email)
		if err != nil {
			return err
		}
		r.ack(res, messageOr(res.Message, "A code was sent to "+strings.TrimSpace(*email)+"."))
	case "verify":
		res, err := app.Reset.VerifyOTP(ctx, *email, *otp)
		if err != nil {
			return err
		}
		r.ack(res, messageOr(res.Message, "Code accepted."))
	case "set":
		res, err := app.Reset.ResetPassword(ctx, *email, *otp, *password, *confirmPw)
		if err != nil {
			return err
		}
		r.ack(res, messageOr(res.Message, "Password updated."))
	default:
		return usageError(usage)
	}
	return nil
}

func messageOr(msg, fallback string) string {
	if strings.TrimSpace(msg) != "" {
		return msg
	}
	return fallback
}
