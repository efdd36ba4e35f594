// Package memory is an in-process implementation of the gateway contract.
// It backs tests and the development stub server; data lives only as long as
// the process.
package memory

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Koushikchikkond/vouchers/internal/core"
	"github.com/Koushikchikkond/vouchers/internal/gateway"
)

type Store struct {
	mu        sync.Mutex
	nodes     map[string][]string // user -> nodes in creation order
	items     []core.Transaction
	owners    map[core.RowID]string // row id -> user
	otps      map[string]string     // email -> pending OTP
	passwords map[string]string     // email -> password set through reset
	now       func() time.Time
}

var _ gateway.Gateway = (*Store)(nil)

func New() *Store {
	return &Store{
		nodes:     map[string][]string{},
		owners:    map[core.RowID]string{},
		otps:      map[string]string{},
		passwords: map[string]string{},
		now:       time.Now,
	}
}

// Seed registers nodes for a user without transactions.
func (s *Store) Seed(user string, nodes ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range nodes {
		s.addNodeLocked(user, n)
	}
}

// GetNodes implements gateway.NodeReader
func (s *Store) GetNodes(_ context.Context, user string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.nodes[user]...), nil
}

// GetNodeSummary implements gateway.SummaryReader
func (s *Store) GetNodeSummary(_ context.Context, user, node string) (gateway.NodeSummary, error) {
	s.mu.Lock()
	txs := s.filterLocked(func(owner string, tx core.Transaction) bool {
		return owner == user && tx.Node == node
	})
	s.mu.Unlock()

	totals := core.Summarize(txs)
	return gateway.NodeSummary{
		TotalIn:      core.Amount(totals.In.String()),
		TotalOut:     core.Amount(totals.Out.String()),
		Balance:      core.Amount(totals.Balance.String()),
		Transactions: txs,
	}, nil
}

// GetHistory implements gateway.HistoryReader
func (s *Store) GetHistory(_ context.Context, q gateway.HistoryQuery) ([]core.Transaction, error) {
	from, to, err := core.ParseRange(q.StartDate, q.EndDate)
	if err != nil {
		return nil, &gateway.ApplicationError{Action: gateway.ActionGetHistory, Status: "error", Message: err.Error()}
	}
	s.mu.Lock()
	txs := s.filterLocked(func(owner string, tx core.Transaction) bool {
		return owner == q.User && tx.Node == q.Node
	})
	s.mu.Unlock()
	return core.FilterByDate(txs, from, to), nil
}

// GetAllNodesExport implements gateway.HistoryReader
func (s *Store) GetAllNodesExport(_ context.Context, user string) ([]core.Transaction, error) {
	s.mu.Lock()
	txs := s.filterLocked(func(owner string, _ core.Transaction) bool { return owner == user })
	s.mu.Unlock()
	sort.SliceStable(txs, func(i, j int) bool {
		if txs[i].Node != txs[j].Node {
			return txs[i].Node < txs[j].Node
		}
		return txs[i].Date < txs[j].Date
	})
	return txs, nil
}

// UpdateNode implements gateway.NodeWriter. Transactions follow the rename.
func (s *Store) UpdateNode(_ context.Context, user, oldNode, newNode string) (gateway.Result, error) {
	newNode = strings.TrimSpace(newNode)
	if newNode == "" {
		return fail(gateway.ActionUpdateNode, "New node name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := indexOf(s.nodes[user], oldNode)
	if idx < 0 {
		return fail(gateway.ActionUpdateNode, "Node not found")
	}
	if oldNode != newNode && indexOf(s.nodes[user], newNode) >= 0 {
		return fail(gateway.ActionUpdateNode, "Node already exists")
	}
	s.nodes[user][idx] = newNode
	for i := range s.items {
		if s.owners[s.items[i].ID] == user && s.items[i].Node == oldNode {
			s.items[i].Node = newNode
		}
	}
	return ok(), nil
}

// DeleteNode implements gateway.NodeWriter. The node's transactions go too.
func (s *Store) DeleteNode(_ context.Context, user, node string) (gateway.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := indexOf(s.nodes[user], node)
	if idx < 0 {
		return fail(gateway.ActionDeleteNode, "Node not found")
	}
	s.nodes[user] = append(s.nodes[user][:idx], s.nodes[user][idx+1:]...)
	kept := s.items[:0]
	for _, tx := range s.items {
		if s.owners[tx.ID] == user && tx.Node == node {
			delete(s.owners, tx.ID)
			continue
		}
		kept = append(kept, tx)
	}
	s.items = kept
	return ok(), nil
}

// SaveTransaction implements gateway.TransactionWriter. Unknown nodes are
// created on first use.
func (s *Store) SaveTransaction(_ context.Context, p gateway.SavePayload) (gateway.Result, error) {
	tx := core.Transaction{
		Node:     strings.TrimSpace(p.Node),
		Type:     p.Type,
		Amount:   p.Amount,
		Date:     p.Date,
		Reason:   p.Reason,
		Category: p.Category,
		Image:    p.Image,
	}.Normalize()
	if p.User == "" || tx.Node == "" {
		return fail(gateway.ActionSaveTransaction, "User and node are required")
	}
	if err := tx.Validate(); err != nil {
		return fail(gateway.ActionSaveTransaction, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tx.ID = core.RowID(uuid.NewString())
	tx.Timestamp = s.now().UTC().Format(time.RFC3339)
	s.addNodeLocked(p.User, tx.Node)
	s.items = append(s.items, tx)
	s.owners[tx.ID] = p.User
	return ok(), nil
}

// UpdateTransaction implements gateway.TransactionWriter
func (s *Store) UpdateTransaction(_ context.Context, p gateway.UpdatePayload) (gateway.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(p.RowID)
	if i < 0 {
		return fail(gateway.ActionUpdateTransaction, "Transaction not found")
	}
	updated := s.items[i]
	updated.Type, updated.Amount, updated.Date = p.Type, p.Amount, p.Date
	updated.Reason, updated.Category = p.Reason, p.Category
	updated = updated.Normalize()
	if err := updated.Validate(); err != nil {
		return fail(gateway.ActionUpdateTransaction, err.Error())
	}
	s.items[i] = updated
	return ok(), nil
}

// DeleteTransaction implements gateway.TransactionWriter
func (s *Store) DeleteTransaction(_ context.Context, id core.RowID) (gateway.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return fail(gateway.ActionDeleteTransaction, "Transaction not found")
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.owners, id)
	return ok(), nil
}

// RequestPasswordReset implements gateway.PasswordReset. The OTP is kept in
// memory instead of being mailed; see PendingOTP.
func (s *Store) RequestPasswordReset(_ context.Context, email string) (gateway.Result, error) {
	if !strings.Contains(email, "@") {
		return fail(gateway.ActionRequestPasswordReset, "Invalid email")
	}
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return gateway.Result{}, fmt.Errorf("generate otp: %w", err)
	}
	s.mu.Lock()
	s.otps[email] = fmt.Sprintf("%06d", n.Int64())
	s.mu.Unlock()
	return gateway.Result{Status: gateway.StatusSuccess, Message: "OTP sent to " + email}, nil
}

// VerifyOTP implements gateway.PasswordReset
func (s *Store) VerifyOTP(_ context.Context, email, otp string) (gateway.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if want, found := s.otps[email]; !found || want != otp {
		return fail(gateway.ActionVerifyOTP, "Invalid OTP")
	}
	return ok(), nil
}

// ResetPassword implements gateway.PasswordReset. A used OTP is discarded.
func (s *Store) ResetPassword(_ context.Context, email, otp, newPassword string) (gateway.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if want, found := s.otps[email]; !found || want != otp {
		return fail(gateway.ActionResetPassword, "Invalid OTP")
	}
	delete(s.otps, email)
	s.passwords[email] = newPassword
	return gateway.Result{Status: gateway.StatusSuccess, Message: "Password updated"}, nil
}

// PendingOTP returns the OTP issued for email, if any.
func (s *Store) PendingOTP(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	otp, found := s.otps[email]
	return otp, found
}

// Password returns the password last set for email through a reset.
func (s *Store) Password(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, found := s.passwords[email]
	return p, found
}

func (s *Store) addNodeLocked(user, node string) {
	node = strings.TrimSpace(node)
	if node == "" || indexOf(s.nodes[user], node) >= 0 {
		return
	}
	s.nodes[user] = append(s.nodes[user], node)
}

func (s *Store) filterLocked(keep func(owner string, tx core.Transaction) bool) []core.Transaction {
	out := []core.Transaction{}
	for _, tx := range s.items {
		if keep(s.owners[tx.ID], tx) {
			out = append(out, tx)
		}
	}
	return out
}

func (s *Store) indexLocked(id core.RowID) int {
	for i, tx := range s.items {
		if tx.ID == id {
			return i
		}
	}
	return -1
}

func indexOf(arr []string, target string) int {
	for i, v := range arr {
		if v == target {
			return i
		}
	}
	return -1
}

func ok() gateway.Result { return gateway.Result{Status: gateway.StatusSuccess} }

func fail(action, msg string) (gateway.Result, error) {
	res := gateway.Result{Status: "error", Message: msg}
	return res, gateway.CheckResult(action, res)
}
