package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/Koushikchikkond/vouchers/internal/auth"
	"github.com/Koushikchikkond/vouchers/internal/config"
	"github.com/Koushikchikkond/vouchers/internal/core"
	"github.com/Koushikchikkond/vouchers/internal/form"
	"github.com/Koushikchikkond/vouchers/internal/gateway"
	"github.com/Koushikchikkond/vouchers/internal/log"
	"github.com/Koushikchikkond/vouchers/internal/nodes"
	"github.com/Koushikchikkond/vouchers/internal/session"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

const offlineNotice = "(offline: not persisted)"

// Runner dispatches one command line. Command output goes to Stdout,
// notices and errors to Stderr.
type Runner struct {
	Config *config.Config
	Logger *log.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// NewGateway picks the gateway for the app; defaults to NewGateway.
	NewGateway func(*config.Config, *log.Logger) (gateway.Gateway, error)

	in *bufio.Reader
}

type handler func(ctx context.Context, app *App, args []string) error

// Run executes args (without the program name) and returns the exit code.
func (r *Runner) Run(ctx context.Context, args []string) int {
	if len(args) < 1 {
		r.printUsage()
		return ExitUsage
	}

	switch args[0] {
	case "help", "-h", "--help":
		r.printUsage()
		return ExitOK
	case "stub-gateway":
		return r.report(r.runStubGateway(ctx, args[1:]))
	}

	h, found := r.handlers()[args[0]]
	if !found {
		fmt.Fprintf(r.Stderr, "Unknown command: %s\n\n", args[0])
		r.printUsage()
		return ExitUsage
	}

	if err := r.Config.Validate(); err != nil {
		fmt.Fprintln(r.Stderr, err)
		return ExitError
	}
	newGateway := r.NewGateway
	if newGateway == nil {
		newGateway = NewGateway
	}
	gw, err := newGateway(r.Config, r.Logger)
	if err != nil {
		return r.report(err)
	}
	app, err := NewApp(ctx, r.Config, gw, r.Logger)
	if err != nil {
		return r.report(err)
	}
	defer app.Close()

	return r.report(h(ctx, app, args[1:]))
}

func (r *Runner) handlers() map[string]handler {
	return map[string]handler{
		"login":          r.runLogin,
		"logout":         r.runLogout,
		"whoami":         r.runWhoami,
		"nodes":          r.runNodes,
		"add":            r.runAdd,
		"entry":          r.runEntry,
		"summary":        r.runSummary,
		"history":        r.runHistory,
		"edit":           r.runEdit,
		"delete":         r.runDelete,
		"export":         r.runExport,
		"reset-password": r.runResetPassword,
	}
}

func (r *Runner) printUsage() {
	fmt.Fprint(r.Stdout, `Vouchers - expense and advance tracker

Usage:
  vouchers <command> [options]

Commands:
  login            Sign in with the configured credentials
  logout           Sign out and clear cached data
  whoami           Show the signed-in user
  nodes            List, create, rename or delete nodes
  add              Submit one transaction
  entry            Fill in transactions interactively
  summary          Show a node's transactions and totals
  history          List a node's transactions in a date range
  edit             Correct a saved transaction
  delete           Delete a saved transaction
  export           Export a report as pdf, xlsx, csv or to Google Sheets
  reset-password   Reset the account password by email OTP
  stub-gateway     Serve an in-memory gateway for local development
  help             Show this help message

Run 'vouchers <command> -h' for more information on a command.
`)
}

// report prints err for the user and maps it to an exit code.
func (r *Runner) report(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, flag.ErrHelp) {
		return ExitOK
	}
	if errors.Is(err, errFlagsRejected) {
		return ExitUsage
	}
	var usage usageError
	if errors.As(err, &usage) {
		fmt.Fprintln(r.Stderr, usage.Error())
		return ExitUsage
	}
	fmt.Fprintln(r.Stderr, "Error:", describe(err))
	return ExitError
}

// describe turns err into a user-facing notice.
func describe(err error) string {
	var ve *core.ValidationError
	var se *core.SubmissionError
	switch {
	case errors.Is(err, session.ErrNotAuthenticated):
		return "not logged in, run 'vouchers login' first"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "invalid username or password"
	case errors.As(err, &ve):
		return ve.Error()
	case errors.As(err, &se):
		return "transaction not saved: " + gateway.Describe(se.Cause)
	case errors.Is(err, nodes.ErrUnknownNode), errors.Is(err, nodes.ErrNodeExists),
		errors.Is(err, form.ErrAmountLocked), errors.Is(err, form.ErrCategoryHidden):
		return err.Error()
	default:
		return gateway.Describe(err)
	}
}

// errFlagsRejected follows a parse failure the flag set already printed.
var errFlagsRejected = errors.New("invalid flags")

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errFlagsRejected
	}
	return nil
}

type usageError string

func (e usageError) Error() string { return string(e) }

func (r *Runner) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(r.Stderr)
	return fs
}

// ack prints msg, marking acknowledgements the offline gateway simulated.
func (r *Runner) ack(res gateway.Result, msg string) {
	if res.Simulated {
		fmt.Fprintln(r.Stdout, msg, offlineNotice)
		return
	}
	fmt.Fprintln(r.Stdout, msg)
}

// readLine reads one line from Stdin, without the newline.
func (r *Runner) readLine() (string, error) {
	if r.in == nil {
		r.in = bufio.NewReader(r.Stdin)
	}
	line, err := r.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// confirm asks a yes/no question on Stdout; anything but y/yes is no.
func (r *Runner) confirm(question string) bool {
	fmt.Fprintf(r.Stdout, "%s [y/N]: ", question)
	answer, err := r.readLine()
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
