package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Koushikchikkond/vouchers/internal/core"
	"github.com/Koushikchikkond/vouchers/internal/form"
)

const entryHelp = `Commands:
  type in|out          Set the transaction type (clears category and amount)
  category NAME        travel, food, purchase or leaving (IN only)
  amount VALUE         Set the amount
  date YYYY-MM-DD      Set the date
  reason TEXT          Set the reason
  image PATH           Attach a receipt image
  clear-image          Remove the attached image
  show                 Show the current entry
  submit               Save the entry; type and date are kept for the next one
  quit                 Leave
`

// runEntry is the interactive form: one command per line on Stdin, driving
// a single draft through as many submits as the user likes.
func (r *Runner) runEntry(ctx context.Context, app *App, args []string) error {
	fs := r.flagSet("entry")
	node := fs.String("node", "", "Node to record transactions in")
	mode := fs.String("mode", string(core.ModeVoucher), "Entry mode: voucher or requested")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	sess, err := app.Session(ctx)
	if err != nil {
		return err
	}
	m, err := core.ParseMode(*mode)
	if err != nil {
		return err
	}
	if err := app.Nodes.Require(ctx, sess, *node); err != nil {
		return err
	}

	d := form.NewDraft(m, core.Today())
	fmt.Fprintf(r.Stdout, "New %s entries for %q. Type 'help' for commands.\n", strings.ToLower(string(m)), *node)

	for {
		fmt.Fprint(r.Stdout, "> ")
		line, err := r.readLine()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.Stdout)
			return nil
		}
		if err != nil {
			return err
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)
		switch strings.ToLower(cmd) {
		case "":
		case "help", "?":
			fmt.Fprint(r.Stdout, entryHelp)
		case "quit", "exit":
			return nil
		case "show":
			r.showDraft(app, d)
		case "submit":
			res, err := app.Submitter.Submit(ctx, sess, *node, d)
			if err != nil {
				r.entryError(err)
				continue
			}
			r.ack(res, "Saved.")
		default:
			if err := editDraft(d, strings.ToLower(cmd), arg); err != nil {
				r.entryError(err)
			}
		}
	}
}

// editDraft applies one field command to d.
func editDraft(d *form.Draft, cmd, arg string) error {
	switch cmd {
	case "type":
		t, err := core.ParseType(arg)
		if err != nil {
			return err
		}
		return d.SetType(t)
	case "category":
		c, err := core.ParseCategory(arg)
		if err != nil {
			return err
		}
		if c == "" {
			return &core.ValidationError{Field: core.FieldCategory, Err: core.ErrInvalidCategory}
		}
		return d.SelectCategory(c)
	case "amount":
		return d.SetAmount(arg)
	case "date":
		d.SetDate(arg)
		return nil
	case "reason":
		d.SetReason(arg)
		return nil
	case "image":
		return attachImageFile(d, arg)
	case "clear-image":
		d.ClearImage()
		return nil
	default:
		return usageError(fmt.Sprintf("unknown command %q, type 'help' for the list", cmd))
	}
}

func (r *Runner) entryError(err error) {
	var usage usageError
	if errors.As(err, &usage) {
		fmt.Fprintln(r.Stderr, usage.Error())
		return
	}
	fmt.Fprintln(r.Stderr, "Error:", describe(err))
}

func (r *Runner) showDraft(app *App, d *form.Draft) {
	tw := tabwriter.NewWriter(r.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Mode:\t%s\n", d.Mode())
	fmt.Fprintf(tw, "Type:\t%s\n", d.Type())
	if d.CategoryVisible() {
		fmt.Fprintf(tw, "Category:\t%s\n", valueOr(string(d.Category()), "(none)"))
	}
	amount := valueOr(d.Amount(), "(none)")
	if d.Amount() != "" {
		amount = formatAmount(app.Config.CurrencySymbol, core.Amount(d.Amount()))
	}
	if d.AmountReadOnly() {
		amount += " (fixed)"
	}
	fmt.Fprintf(tw, "Amount:\t%s\n", amount)
	fmt.Fprintf(tw, "Date:\t%s\n", valueOr(d.Date(), "(none)"))
	fmt.Fprintf(tw, "Reason:\t%s\n", valueOr(d.Reason(), "(none)"))
	image := "none"
	if d.HasImage() {
		image = "attached"
	}
	fmt.Fprintf(tw, "Image:\t%s\n", image)
	tw.Flush()
}

func valueOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
