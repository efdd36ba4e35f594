// Package ledger covers the node detail operations: summaries, history,
// corrections and exports.
package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Koushikchikkond/vouchers/internal/core"
	"github.com/Koushikchikkond/vouchers/internal/events"
	"github.com/Koushikchikkond/vouchers/internal/gateway"
	"github.com/Koushikchikkond/vouchers/internal/log"
	"github.com/Koushikchikkond/vouchers/internal/report"
	"github.com/Koushikchikkond/vouchers/internal/session"
)

type Gateway interface {
	GetNodeSummary(ctx context.Context, user, node string) (gateway.NodeSummary, error)
	GetHistory(ctx context.Context, q gateway.HistoryQuery) ([]core.Transaction, error)
	GetAllNodesExport(ctx context.Context, user string) ([]core.Transaction, error)
	UpdateTransaction(ctx context.Context, p gateway.UpdatePayload) (gateway.Result, error)
	DeleteTransaction(ctx context.Context, id core.RowID) (gateway.Result, error)
}

type NodeChecker interface {
	Require(ctx context.Context, s session.Session, node string) error
}

// Edit is a correction to a saved transaction. Node only scopes the event.
type Edit struct {
	ID       core.RowID
	Node     string
	Type     core.TxType
	Amount   string
	Date     string
	Reason   string
	Category core.Category
}

type Service struct {
	gw       Gateway
	nodes    NodeChecker
	events   events.Publisher
	currency string
	logger   *log.Logger
}

func NewService(gw Gateway, nodes NodeChecker, pub events.Publisher, currency string, logger *log.Logger) *Service {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Service{
		gw:       gw,
		nodes:    nodes,
		events:   pub,
		currency: currency,
		logger:   logger.WithComponent(log.ComponentLedger),
	}
}

// Summary returns the node's rows with totals computed here. Totals the
// backend reports alongside are only compared and logged.
func (s *Service) Summary(ctx context.Context, sess session.Session, node string) (core.Summary, error) {
	if strings.TrimSpace(node) == "" {
		return core.Summary{}, &core.ValidationError{Field: core.FieldNode, Err: core.ErrEmptyNode}
	}
	ns, err := s.gw.GetNodeSummary(ctx, sess.Username, node)
	if err != nil {
		return core.Summary{}, fmt.Errorf("node summary: %w", err)
	}

	sum := core.NewSummary(ns.Transactions)
	s.logSkipped(ctx, sess, node, sum.Totals)
	s.compareTotals(ctx, sess, node, ns, sum.Totals)
	return sum, nil
}

// History lists the node's transactions dated within [from, to]. Both
// bounds are required.
func (s *Service) History(ctx context.Context, sess session.Session, node, from, to string) ([]core.Transaction, error) {
	if strings.TrimSpace(node) == "" {
		return nil, &core.ValidationError{Field: core.FieldNode, Err: core.ErrEmptyNode}
	}
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return nil, &core.ValidationError{Field: core.FieldDate, Err: core.ErrMissingDate}
	}
	start, end, err := core.ParseRange(from, to)
	if err != nil {
		return nil, err
	}

	txs, err := s.gw.GetHistory(ctx, gateway.HistoryQuery{
		User:      sess.Username,
		Node:      node,
		StartDate: start.String(),
		EndDate:   end.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return txs, nil
}

// ExportAll returns every transaction of the user across nodes, filtered
// to the optional range here since the backend does not filter.
func (s *Service) ExportAll(ctx context.Context, sess session.Session, from, to string) ([]core.Transaction, report.Period, error) {
	start, end, err := core.ParseRange(from, to)
	if err != nil {
		return nil, report.Period{}, err
	}
	txs, err := s.gw.GetAllNodesExport(ctx, sess.Username)
	if err != nil {
		return nil, report.Period{}, fmt.Errorf("export all nodes: %w", err)
	}
	return core.FilterByDate(txs, start, end), report.Period{From: start, To: end}, nil
}

// BuildReport pairs rows with their totals for the exporters. An empty node
// means all nodes.
func (s *Service) BuildReport(ctx context.Context, sess session.Session, node string, period report.Period, txs []core.Transaction) report.Report {
	totals := core.Summarize(txs)
	s.logSkipped(ctx, sess, node, totals)
	return report.New(node, period, txs, totals, s.currency)
}

func (s *Service) UpdateTransaction(ctx context.Context, sess session.Session, e Edit) (gateway.Result, error) {
	if strings.TrimSpace(string(e.ID)) == "" {
		return gateway.Result{}, &core.ValidationError{Field: core.FieldID, Err: core.ErrMissingID}
	}
	tx := core.Transaction{
		ID:       e.ID,
		Type:     e.Type,
		Amount:   core.Amount(strings.TrimSpace(e.Amount)),
		Date:     strings.TrimSpace(e.Date),
		Reason:   e.Reason,
		Category: e.Category,
	}.Normalize()
	if err := tx.Validate(); err != nil {
		return gateway.Result{}, err
	}

	res, err := s.gw.UpdateTransaction(ctx, gateway.UpdatePayload{
		RowID:    tx.ID,
		Type:     tx.Type,
		Amount:   tx.Amount,
		Date:     tx.Date,
		Reason:   tx.Reason,
		Category: tx.Category,
	})
	if err != nil {
		return res, fmt.Errorf("update transaction: %w", err)
	}
	s.ack(ctx, gateway.ActionUpdateTransaction, sess, e.Node, res)

	if !res.Simulated {
		ev := events.New(events.TransactionUpdated, sess.Username, e.Node)
		ev.TransactionID = tx.ID
		ev.Type = tx.Type
		ev.Amount = tx.Amount
		ev.Category = tx.Category
		events.Emit(ctx, s.events, ev)
	}
	return res, nil
}

func (s *Service) DeleteTransaction(ctx context.Context, sess session.Session, id core.RowID, node string) (gateway.Result, error) {
	if strings.TrimSpace(string(id)) == "" {
		return gateway.Result{}, &core.ValidationError{Field: core.FieldID, Err: core.ErrMissingID}
	}
	res, err := s.gw.DeleteTransaction(ctx, id)
	if err != nil {
		return res, fmt.Errorf("delete transaction: %w", err)
	}
	s.ack(ctx, gateway.ActionDeleteTransaction, sess, node, res)

	if !res.Simulated {
		ev := events.New(events.TransactionDeleted, sess.Username, node)
		ev.TransactionID = id
		events.Emit(ctx, s.events, ev)
	}
	return res, nil
}

// RequireNode checks node before a node-scoped export.
func (s *Service) RequireNode(ctx context.Context, sess session.Session, node string) error {
	return s.nodes.Require(ctx, sess, node)
}

func (s *Service) ack(ctx context.Context, action string, sess session.Session, node string, res gateway.Result) {
	fields := log.NewFields().WithScope(sess.Username, node)
	fields[log.FieldAction] = action
	if res.Simulated {
		fields[log.FieldSimulated] = true
		s.logger.WarnContext(ctx, "Gateway not configured, change not persisted", fields.ToSlice()...)
		return
	}
	s.logger.InfoContext(ctx, "Transaction changed", fields.ToSlice()...)
}

func (s *Service) logSkipped(ctx context.Context, sess session.Session, node string, t core.Totals) {
	if t.Skipped == 0 {
		return
	}
	s.logger.WarnContext(ctx, "Rows with unreadable amounts counted as zero",
		log.FieldUser, sess.Username,
		log.FieldNode, node,
		log.FieldSkippedRows, t.Skipped)
}

func (s *Service) compareTotals(ctx context.Context, sess session.Session, node string, ns gateway.NodeSummary, t core.Totals) {
	check := func(label string, reported core.Amount, computed decimal.Decimal) {
		if reported == "" {
			return
		}
		if d, err := reported.Decimal(); err == nil && d.Equal(computed) {
			return
		}
		s.logger.WarnContext(ctx, "Backend total differs from local computation",
			log.FieldUser, sess.Username,
			log.FieldNode, node,
			"total", label,
			"reported", string(reported),
			"computed", computed.String())
	}
	check("in", ns.TotalIn, t.In)
	check("out", ns.TotalOut, t.Out)
	check("balance", ns.Balance, t.Balance)
}
