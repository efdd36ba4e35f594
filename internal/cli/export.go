package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Koushikchikkond/vouchers/internal/core"
	"github.com/Koushikchikkond/vouchers/internal/log"
	"github.com/Koushikchikkond/vouchers/internal/report"
	"github.com/Koushikchikkond/vouchers/internal/session"
)

func (r *Runner) runExport(ctx context.Context, app *App, args []string) error {
	fs := r.flagSet("export")
	node := fs.String("node", "", "Node to export")
	all := fs.Bool("all", false, "Export every node")
	from := fs.String("from", "", "First date, YYYY-MM-DD")
	to := fs.String("to", "", "Last date, YYYY-MM-DD")
	format := fs.String("format", report.FormatPDF, "pdf, xlsx, csv or sheets")
	out := fs.String("out", "", "Output file or directory (default: generated name in the current directory)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *all == (strings.TrimSpace(*node) != "") {
		return usageError("usage: vouchers export (-node NAME | -all) [-from DATE] [-to DATE] [-format pdf|xlsx|csv|sheets] [-out PATH]")
	}
	*format = strings.ToLower(strings.TrimSpace(*format))

	sess, err := app.Session(ctx)
	if err != nil {
		return err
	}

	var rep report.Report
	if *all {
		txs, period, err := app.Ledger.ExportAll(ctx, sess, *from, *to)
		if err != nil {
			return err
		}
		rep = app.Ledger.BuildReport(ctx, sess, "", period, txs)
	} else {
		if rep, err = r.nodeReport(ctx, app, sess, *node, *from, *to); err != nil {
			return err
		}
	}

	if *format == report.FormatSheets {
		return r.publishSheets(ctx, app, rep)
	}

	renderer, err := report.RendererFor(*format)
	if err != nil {
		return usageError(err.Error())
	}
	path := outputPath(*out, report.FileName(rep, renderer.Extension()))
	if err := writeReport(ctx, renderer, path, rep); err != nil {
		return err
	}

	app.Logger.InfoContext(ctx, "Report exported",
		log.FieldOperation, log.OpExport,
		log.FieldFormat, *format,
		log.FieldRows, len(rep.Transactions),
		"path", path)
	fmt.Fprintf(r.Stdout, "Wrote %s (%d transactions)\n", path, len(rep.Transactions))
	return nil
}

// nodeReport uses the history action for a closed range and the node
// summary otherwise, narrowed to the open range if one bound was given.
func (r *Runner) nodeReport(ctx context.Context, app *App, sess session.Session, node, from, to string) (report.Report, error) {
	if err := app.Ledger.RequireNode(ctx, sess, node); err != nil {
		return report.Report{}, err
	}
	start, end, err := core.ParseRange(from, to)
	if err != nil {
		return report.Report{}, err
	}
	period := report.Period{From: start, To: end}

	var txs []core.Transaction
	if !start.IsZero() && !end.IsZero() {
		txs, err = app.Ledger.History(ctx, sess, node, from, to)
	} else {
		var sum core.Summary
		sum, err = app.Ledger.Summary(ctx, sess, node)
		txs = core.FilterByDate(sum.Transactions, start, end)
	}
	if err != nil {
		return report.Report{}, err
	}
	return app.Ledger.BuildReport(ctx, sess, node, period, txs), nil
}

func (r *Runner) publishSheets(ctx context.Context, app *App, rep report.Report) error {
	cfg := app.Config
	creds, err := report.ServiceAccountCredentials(cfg.GoogleServiceAccountJSON, cfg.GoogleServiceAccountFile)
	if err != nil {
		return err
	}
	pub, err := report.NewSheetsPublisher(ctx, cfg.GoogleSpreadsheetID, creds, app.Logger)
	if err != nil {
		return err
	}
	link, err := pub.Publish(ctx, rep)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.Stdout, "Published %d transactions to %s\n", len(rep.Transactions), link)
	return nil
}

// outputPath resolves -out: empty means the generated name in the working
// directory, an existing directory receives the generated name.
func outputPath(out, generated string) string {
	if out == "" {
		return generated
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, generated)
	}
	return out
}

func writeReport(ctx context.Context, renderer report.Renderer, path string, rep report.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if err := renderer.Render(ctx, f, rep); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("render %s report: %w", renderer.Extension(), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report file: %w", err)
	}
	return nil
}
