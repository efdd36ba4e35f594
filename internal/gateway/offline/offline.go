// Package offline is the degraded-mode gateway used when no backend URL is
// configured. Reads return placeholder data and writes are acknowledged
// without being stored; every acknowledgement is marked Simulated.
package offline

import (
	"context"
	"log/slog"

	"github.com/Koushikchikkond/vouchers/internal/core"
	"github.com/Koushikchikkond/vouchers/internal/gateway"
)

// PlaceholderNodes is the node list shown when running offline.
var PlaceholderNodes = []string{"Demo Project", "Office Expenses"}

type Gateway struct{}

var _ gateway.Gateway = Gateway{}

func New() Gateway { return Gateway{} }

func (Gateway) GetNodes(ctx context.Context, user string) ([]string, error) {
	slog.WarnContext(ctx, "Gateway not configured, returning placeholder nodes", "user", user)
	return append([]string(nil), PlaceholderNodes...), nil
}

func (Gateway) GetNodeSummary(_ context.Context, _, _ string) (gateway.NodeSummary, error) {
	return gateway.NodeSummary{
		TotalIn:      "0",
		TotalOut:     "0",
		Balance:      "0",
		Transactions: []core.Transaction{},
	}, nil
}

func (Gateway) GetHistory(_ context.Context, _ gateway.HistoryQuery) ([]core.Transaction, error) {
	return []core.Transaction{}, nil
}

func (Gateway) GetAllNodesExport(_ context.Context, _ string) ([]core.Transaction, error) {
	return []core.Transaction{}, nil
}

func (g Gateway) UpdateNode(ctx context.Context, _, _, _ string) (gateway.Result, error) {
	return simulated(ctx, gateway.ActionUpdateNode), nil
}

func (g Gateway) DeleteNode(ctx context.Context, _, _ string) (gateway.Result, error) {
	return simulated(ctx, gateway.ActionDeleteNode), nil
}

func (g Gateway) SaveTransaction(ctx context.Context, _ gateway.SavePayload) (gateway.Result, error) {
	return simulated(ctx, gateway.ActionSaveTransaction), nil
}

func (g Gateway) UpdateTransaction(ctx context.Context, _ gateway.UpdatePayload) (gateway.Result, error) {
	return simulated(ctx, gateway.ActionUpdateTransaction), nil
}

func (g Gateway) DeleteTransaction(ctx context.Context, _ core.RowID) (gateway.Result, error) {
	return simulated(ctx, gateway.ActionDeleteTransaction), nil
}

// RequestPasswordReset cannot be simulated: there is nowhere to send the OTP.
func (Gateway) RequestPasswordReset(_ context.Context, _ string) (gateway.Result, error) {
	return gateway.Result{Status: "error", Message: gateway.ErrNotConfigured.Error()}, gateway.ErrNotConfigured
}

func (g Gateway) VerifyOTP(ctx context.Context, _, _ string) (gateway.Result, error) {
	return simulated(ctx, gateway.ActionVerifyOTP), nil
}

func (g Gateway) ResetPassword(ctx context.Context, _, _, _ string) (gateway.Result, error) {
	return simulated(ctx, gateway.ActionResetPassword), nil
}

func simulated(ctx context.Context, action string) gateway.Result {
	slog.WarnContext(ctx, "Gateway not configured, change not persisted", "action", action, "simulated", true)
	return gateway.Result{Status: gateway.StatusSuccess, Simulated: true}
}
