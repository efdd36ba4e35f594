// Package gateway defines the contract with the remote persistence service.
//
// The service exposes a single endpoint. Reads are GET requests carrying an
// action query parameter; writes are POST requests whose JSON body carries
// the action next to its parameters. Implementations live in the remote
// (HTTP), offline (degraded mode) and memory (in-process stand-in) packages.
package gateway

import (
	"context"

	"github.com/Koushikchikkond/vouchers/internal/core"
)

// Action names understood by the gateway.
const (
	ActionGetNodes             = "getNodes"
	ActionGetNodeSummary       = "getNodeSummary"
	ActionUpdateNode           = "updateNode"
	ActionDeleteNode           = "deleteNode"
	ActionSaveTransaction      = "saveTransaction"
	ActionUpdateTransaction    = "updateTransaction"
	ActionDeleteTransaction    = "deleteTransaction"
	ActionGetHistory           = "getHistory"
	ActionGetAllNodesExport    = "getAllNodesExport"
	ActionRequestPasswordReset = "requestPasswordReset"
	ActionVerifyOTP            = "verifyOTP"
	ActionResetPassword        = "resetPassword"
)

// StatusSuccess is the only status value treated as success.
const StatusSuccess = "success"

// Ports for outbound adapters.
type (
	NodeReader interface {
		GetNodes(ctx context.Context, user string) ([]string, error)
	}

	NodeWriter interface {
		UpdateNode(ctx context.Context, user, oldNode, newNode string) (Result, error)
		DeleteNode(ctx context.Context, user, node string) (Result, error)
	}

	// SummaryReader returns the backend's view of a node: its totals and rows.
	SummaryReader interface {
		GetNodeSummary(ctx context.Context, user, node string) (NodeSummary, error)
	}

	HistoryReader interface {
		GetHistory(ctx context.Context, q HistoryQuery) ([]core.Transaction, error)
		GetAllNodesExport(ctx context.Context, user string) ([]core.Transaction, error)
	}

	TransactionWriter interface {
		SaveTransaction(ctx context.Context, p SavePayload) (Result, error)
		UpdateTransaction(ctx context.Context, p UpdatePayload) (Result, error)
		DeleteTransaction(ctx context.Context, id core.RowID) (Result, error)
	}

	PasswordReset interface {
		RequestPasswordReset(ctx context.Context, email string) (Result, error)
		VerifyOTP(ctx context.Context, email, otp string) (Result, error)
		ResetPassword(ctx context.Context, email, otp, newPassword string) (Result, error)
	}

	// Gateway is the full action surface.
	Gateway interface {
		NodeReader
		NodeWriter
		SummaryReader
		HistoryReader
		TransactionWriter
		PasswordReset
	}
)

// Result is the acknowledgement of a write. Simulated is set by the offline
// gateway: the call succeeded but nothing was persisted.
type Result struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	Simulated bool   `json:"-"`
}

// NodeSummary is the getNodeSummary response. Totals are the backend's own
// figures; callers recompute them from Transactions.
type NodeSummary struct {
	TotalIn      core.Amount        `json:"totalIn"`
	TotalOut     core.Amount        `json:"totalOut"`
	Balance      core.Amount        `json:"balance"`
	Transactions []core.Transaction `json:"transactions"`
}

type HistoryQuery struct {
	User      string
	Node      string
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
}

// SavePayload is the saveTransaction body. Category is empty for OUT.
type SavePayload struct {
	User     string        `json:"user"`
	Node     string        `json:"node"`
	Type     core.TxType   `json:"type"`
	Amount   core.Amount   `json:"amount"`
	Date     string        `json:"date"`
	Reason   string        `json:"reason"`
	Category core.Category `json:"category"`
	Image    string        `json:"image"`
}

type UpdatePayload struct {
	RowID    core.RowID    `json:"rowId"`
	Type     core.TxType   `json:"type"`
	Amount   core.Amount   `json:"amount"`
	Date     string        `json:"date"`
	Reason   string        `json:"reason"`
	Category core.Category `json:"category"`
}
