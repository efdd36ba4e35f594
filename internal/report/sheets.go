package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/Koushikchikkond/vouchers/internal/log"
)

// SheetsPublisher writes each report into a new tab of one spreadsheet.
type SheetsPublisher struct {
	svc           *gsheet.Service
	spreadsheetID string
	logger        *log.Logger
}

var _ Publisher = (*SheetsPublisher)(nil)

// ServiceAccountCredentials returns inline JSON when set, otherwise the
// contents of file, otherwise of GOOGLE_APPLICATION_CREDENTIALS.
func ServiceAccountCredentials(inlineJSON, file string) ([]byte, error) {
	inlineJSON = strings.TrimSpace(inlineJSON)
	file = strings.TrimSpace(file)
	if inlineJSON == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case inlineJSON != "":
		return []byte(inlineJSON), nil
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return b, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

// NewSheetsPublisher authenticates with a service account.
func NewSheetsPublisher(ctx context.Context, spreadsheetID string, credentialsJSON []byte, logger *log.Logger) (*SheetsPublisher, error) {
	return NewSheetsPublisherWithOptions(ctx, spreadsheetID, logger,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
}

func NewSheetsPublisherWithOptions(ctx context.Context, spreadsheetID string, logger *log.Logger, opts ...goption.ClientOption) (*SheetsPublisher, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &SheetsPublisher{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		logger:        logger.WithComponent(log.ComponentReport),
	}, nil
}

// Publish adds a tab named after the report and fills it. The returned
// reference is a link to the new tab.
func (p *SheetsPublisher) Publish(ctx context.Context, r Report) (string, error) {
	title := sheetTitle(r)

	resp, err := p.svc.Spreadsheets.BatchUpdate(p.spreadsheetID, &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: title},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("add sheet %q: %w", title, err)
	}

	var sheetID int64
	if len(resp.Replies) > 0 && resp.Replies[0].AddSheet != nil && resp.Replies[0].AddSheet.Properties != nil {
		sheetID = resp.Replies[0].AddSheet.Properties.SheetId
	}

	values := sheetValues(r)
	writeRange := fmt.Sprintf("'%s'!A1", strings.ReplaceAll(title, "'", "''"))
	vr := &gsheet.ValueRange{MajorDimension: "ROWS", Values: values}
	if _, err := p.svc.Spreadsheets.Values.Update(p.spreadsheetID, writeRange, vr).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("write sheet %q: %w", title, err)
	}

	p.logger.InfoContext(ctx, "Report published to Google Sheets",
		log.FieldOperation, log.OpExport,
		log.FieldFormat, FormatSheets,
		log.FieldNode, r.ScopeLabel(),
		log.FieldRows, len(r.Transactions),
		"sheet", title)

	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/edit#gid=%d", p.spreadsheetID, sheetID), nil
}

// Sheet titles are limited to 100 characters.
func sheetTitle(r Report) string {
	base := strings.TrimSuffix(FileName(r, "x"), ".x")
	title := base + " " + r.GeneratedAt.Format("2006-01-02 150405")
	if runes := []rune(title); len(runes) > 100 {
		title = string(runes[len(runes)-100:])
	}
	return title
}

func sheetValues(r Report) [][]interface{} {
	var values [][]interface{}
	values = append(values, []interface{}{r.Title})
	for _, line := range r.HeaderLines() {
		values = append(values, []interface{}{line})
	}
	values = append(values, []interface{}{})
	values = append(values, toCells(r.Columns()))
	for _, row := range r.Rows() {
		values = append(values, toCells(row))
	}
	values = append(values, []interface{}{})
	for _, line := range r.SummaryLines() {
		values = append(values, []interface{}{line.Label, line.Value})
	}
	return values
}
