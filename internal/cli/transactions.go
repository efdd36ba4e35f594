package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/Koushikchikkond/vouchers/internal/core"
	"github.com/Koushikchikkond/vouchers/internal/form"
	"github.com/Koushikchikkond/vouchers/internal/ledger"
)

// draftInput carries form values as typed on the command line.
type draftInput struct {
	Type     string
	Category string
	Amount   string
	Date     string
	Reason   string
	Image    string
}

// fillDraft applies in to d in the order the form would: type first, then
// category, which may impose the amount.
func fillDraft(d *form.Draft, in draftInput) error {
	t, err := core.ParseType(in.Type)
	if err != nil {
		return err
	}
	if err := d.SetType(t); err != nil {
		return err
	}
	if strings.TrimSpace(in.Category) != "" {
		c, err := core.ParseCategory(in.Category)
		if err != nil {
			return err
		}
		if err := d.SelectCategory(c); err != nil {
			return err
		}
	}
	if amount := strings.TrimSpace(in.Amount); amount != "" {
		switch {
		case !d.AmountReadOnly():
			if err := d.SetAmount(amount); err != nil {
				return err
			}
		case !sameAmount(amount, d.Amount()):
			return form.ErrAmountLocked
		}
	}
	if strings.TrimSpace(in.Date) != "" {
		d.SetDate(in.Date)
	}
	d.SetReason(in.Reason)
	if in.Image != "" {
		if err := attachImageFile(d, in.Image); err != nil {
			return err
		}
	}
	return nil
}

// sameAmount compares two amounts by value, so 250.00 matches 250.
func sameAmount(a, b string) bool {
	x, err := core.ParseAmount(a)
	if err != nil {
		return false
	}
	y, err := core.ParseAmount(b)
	return err == nil && x.Equal(y)
}

func attachImageFile(d *form.Draft, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	return d.AttachImage(data)
}

func (r *Runner) runAdd(ctx context.Context, app *App, args []string) error {
	fs := r.flagSet("add")
	node := fs.String("node", "", "Node to record the transaction in")
	mode := fs.String("mode", string(core.ModeVoucher), "Entry mode: voucher or requested")
	in := draftInput{}
	fs.StringVar(&in.Type, "type", string(core.TypeIn), "Transaction type: IN or OUT")
	fs.StringVar(&in.Amount, "amount", "", "Amount")
	fs.StringVar(&in.Date, "date", "", "Date as YYYY-MM-DD (default today)")
	fs.StringVar(&in.Reason, "reason", "", "Reason")
	fs.StringVar(&in.Category, "category", "", "Category for IN: travel, food, purchase, leaving")
	fs.StringVar(&in.Image, "image", "", "Path to a receipt image")
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
	d := form.NewDraft(m, core.Today())
	if err := fillDraft(d, in); err != nil {
		return err
	}

	saved := r.draftLine(app, d)
	res, err := app.Submitter.Submit(ctx, sess, *node, d)
	if err != nil {
		return err
	}
	r.ack(res, fmt.Sprintf("Saved %s to %q", saved, strings.TrimSpace(*node)))
	return nil
}

// draftLine is the one-line description of what a submit would send.
func (r *Runner) draftLine(app *App, d *form.Draft) string {
	tx := d.Transaction()
	line := string(tx.Type) + " " + formatAmount(app.Config.CurrencySymbol, tx.Amount)
	if tx.Category != "" {
		line += " " + string(tx.Category)
	}
	return line
}

func (r *Runner) runSummary(ctx context.Context, app *App, args []string) error {
	fs := r.flagSet("summary")
	node := fs.String("node", "", "Node to summarize")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	sess, err := app.Session(ctx)
	if err != nil {
		return err
	}
	if err := app.Ledger.RequireNode(ctx, sess, *node); err != nil {
		return err
	}
	sum, err := app.Ledger.Summary(ctx, sess, *node)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.Stdout, "Node: %s\n\n", *node)
	printTransactions(r.Stdout, app.Config.CurrencySymbol, sum.Transactions)
	fmt.Fprintln(r.Stdout)
	printTotals(r.Stdout, app.Config.CurrencySymbol, sum.Totals)
	return nil
}

func (r *Runner) runHistory(ctx context.Context, app *App, args []string) error {
	fs := r.flagSet("history")
	node := fs.String("node", "", "Node to list")
	from := fs.String("from", "", "First date, YYYY-MM-DD")
	to := fs.String("to", "", "Last date, YYYY-MM-DD")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	sess, err := app.Session(ctx)
	if err != nil {
		return err
	}
	if err := app.Ledger.RequireNode(ctx, sess, *node); err != nil {
		return err
	}
	txs, err := app.Ledger.History(ctx, sess, *node, *from, *to)
	if err != nil {
		return err
	}
	printTransactions(r.Stdout, app.Config.CurrencySymbol, txs)
	return nil
}

func (r *Runner) runEdit(ctx context.Context, app *App, args []string) error {
	fs := r.flagSet("edit")
	id := fs.String("id", "", "Transaction id")
	node := fs.String("node", "", "Node the transaction belongs to")
	txType := fs.String("type", string(core.TypeIn), "Transaction type: IN or OUT")
	amount := fs.String("amount", "", "Amount")
	date := fs.String("date", "", "Date as YYYY-MM-DD")
	reason := fs.String("reason", "", "Reason")
	category := fs.String("category", "", "Category for IN: travel, food, purchase, leaving")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	sess, err := app.Session(ctx)
	if err != nil {
		return err
	}
	t, err := core.ParseType(*txType)
	if err != nil {
		return err
	}
	c, err := core.ParseCategory(*category)
	if err != nil {
		return err
	}

	res, err := app.Ledger.UpdateTransaction(ctx, sess, ledger.Edit{
		ID:       core.RowID(strings.TrimSpace(*id)),
		Node:     *node,
		Type:     t,
		Amount:   *amount,
		Date:     *date,
		Reason:   *reason,
		Category: c,
	})
	if err != nil {
		return err
	}
	r.ack(res, fmt.Sprintf("Updated transaction %s", strings.TrimSpace(*id)))
	return nil
}

func (r *Runner) runDelete(ctx context.Context, app *App, args []string) error {
	fs := r.flagSet("delete")
	id := fs.String("id", "", "Transaction id")
	node := fs.String("node", "", "Node the transaction belongs to")
	yes := fs.Bool("yes", false, "Skip the confirmation prompt")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	sess, err := app.Session(ctx)
	if err != nil {
		return err
	}
	rowID := core.RowID(strings.TrimSpace(*id))
	if rowID == "" {
		return &core.ValidationError{Field: core.FieldID, Err: core.ErrMissingID}
	}
	if !*yes && !r.confirm(fmt.Sprintf("Delete transaction %s?", rowID)) {
		fmt.Fprintln(r.Stdout, "Cancelled.")
		return nil
	}

	res, err := app.Ledger.DeleteTransaction(ctx, sess, rowID, *node)
	if err != nil {
		return err
	}
	r.ack(res, fmt.Sprintf("Deleted transaction %s", rowID))
	return nil
}

func printTransactions(w io.Writer, currency string, txs []core.Transaction) {
	if len(txs) == 0 {
		fmt.Fprintln(w, "No transactions.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTYPE\tAMOUNT\tCATEGORY\tREASON")
	for _, tx := range txs {
		category := string(tx.Category)
		if category == "" {
			category = "-"
		}
		cells := []string{string(tx.ID), displayDate(tx.Date), string(tx.Type),
			formatAmount(currency, tx.Amount), category, tx.Reason}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()
}

func printTotals(w io.Writer, currency string, t core.Totals) {
	fmt.Fprintf(w, "Total In:  %s\n", core.FormatAmount(currency, t.In))
	fmt.Fprintf(w, "Total Out: %s\n", core.FormatAmount(currency, t.Out))
	fmt.Fprintf(w, "Balance:   %s\n", core.FormatAmount(currency, t.Balance))
	if t.Skipped > 0 {
		fmt.Fprintf(w, "(%d rows with an unreadable amount counted as zero)\n", t.Skipped)
	}
}

// formatAmount shows unparseable amounts as they came.
func formatAmount(currency string, a core.Amount) string {
	d, err := a.Decimal()
	if err != nil {
		return string(a)
	}
	return core.FormatAmount(currency, d)
}

func displayDate(s string) string {
	d, err := core.ParseStoredDate(s)
	if err != nil {
		return s
	}
	return d.String()
}
