package memory

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Koushikchikkond/vouchers/internal/core"
	"github.com/Koushikchikkond/vouchers/internal/gateway"
	applog "github.com/Koushikchikkond/vouchers/internal/log"
)

const maxBodyBytes = 8 << 20

// Handler serves g over the gateway's single-endpoint HTTP protocol.
func Handler(g gateway.Gateway) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			serveRead(w, r, g)
		case http.MethodPost:
			serveWrite(w, r, g)
		default:
			w.Header().Set("Allow", "GET, POST")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
}

func serveRead(w http.ResponseWriter, r *http.Request, g gateway.Gateway) {
	ctx := r.Context()
	q := r.URL.Query()
	action := q.Get("action")
	applog.FromContext(ctx).DebugContext(ctx, "Stub gateway read", applog.FieldAction, action)

	switch action {
	case gateway.ActionGetNodes:
		nodes, err := g.GetNodes(ctx, q.Get("user"))
		respond(w, r, action, map[string]any{"status": gateway.StatusSuccess, "nodes": nodes}, err)
	case gateway.ActionGetNodeSummary:
		sum, err := g.GetNodeSummary(ctx, q.Get("user"), q.Get("node"))
		respond(w, r, action, map[string]any{
			"status":       gateway.StatusSuccess,
			"totalIn":      sum.TotalIn,
			"totalOut":     sum.TotalOut,
			"balance":      sum.Balance,
			"transactions": sum.Transactions,
		}, err)
	case gateway.ActionGetHistory:
		txs, err := g.GetHistory(ctx, gateway.HistoryQuery{
			User:      q.Get("user"),
			Node:      q.Get("node"),
			StartDate: q.Get("startDate"),
			EndDate:   q.Get("endDate"),
		})
		respond(w, r, action, map[string]any{"status": gateway.StatusSuccess, "transactions": txs}, err)
	case gateway.ActionGetAllNodesExport:
		txs, err := g.GetAllNodesExport(ctx, q.Get("user"))
		respond(w, r, action, map[string]any{"status": gateway.StatusSuccess, "transactions": txs}, err)
	case gateway.ActionRequestPasswordReset:
		res, err := g.RequestPasswordReset(ctx, q.Get("email"))
		respond(w, r, action, res, err)
	default:
		writeJSON(w, http.StatusOK, gateway.Result{Status: "error", Message: "Unknown action: " + action})
	}
}

func serveWrite(w http.ResponseWriter, r *http.Request, g gateway.Gateway) {
	ctx := r.Context()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}
	var head struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(body, &head); err != nil {
		http.Error(w, "malformed JSON body", http.StatusBadRequest)
		return
	}
	applog.FromContext(ctx).DebugContext(ctx, "Stub gateway write", applog.FieldAction, head.Action)

	var res gateway.Result
	switch head.Action {
	case gateway.ActionUpdateNode:
		var p struct{ User, OldNode, NewNode string }
		if err = json.Unmarshal(body, &p); err == nil {
			res, err = g.UpdateNode(ctx, p.User, p.OldNode, p.NewNode)
		}
	case gateway.ActionDeleteNode:
		var p struct{ User, Node string }
		if err = json.Unmarshal(body, &p); err == nil {
			res, err = g.DeleteNode(ctx, p.User, p.Node)
		}
	case gateway.ActionSaveTransaction:
		var p gateway.SavePayload
		if err = json.Unmarshal(body, &p); err == nil {
			res, err = g.SaveTransaction(ctx, p)
		}
	case gateway.ActionUpdateTransaction:
		var p gateway.UpdatePayload
		if err = json.Unmarshal(body, &p); err == nil {
			res, err = g.UpdateTransaction(ctx, p)
		}
	case gateway.ActionDeleteTransaction:
		var p struct {
			RowID core.RowID `json:"rowId"`
		}
		if err = json.Unmarshal(body, &p); err == nil {
			res, err = g.DeleteTransaction(ctx, p.RowID)
		}
	case gateway.ActionVerifyOTP:
		var p struct{ Email, OTP string }
		if err = json.Unmarshal(body, &p); err == nil {
			res, err = g.VerifyOTP(ctx, p.Email, p.OTP)
		}
	case gateway.ActionResetPassword:
		var p struct{ Email, OTP, NewPassword string }
		if err = json.Unmarshal(body, &p); err == nil {
			res, err = g.ResetPassword(ctx, p.Email, p.OTP, p.NewPassword)
		}
	default:
		writeJSON(w, http.StatusOK, gateway.Result{Status: "error", Message: "Unknown action: " + head.Action})
		return
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		http.Error(w, "malformed "+head.Action+" body", http.StatusBadRequest)
		return
	}
	respond(w, r, head.Action, res, err)
}

// respond writes payload, or the failure as a status:error body. Only
// unexpected errors become HTTP 500.
func respond(w http.ResponseWriter, r *http.Request, action string, payload any, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, payload)
		return
	}
	var appErr *gateway.ApplicationError
	if errors.As(err, &appErr) {
		writeJSON(w, http.StatusOK, gateway.Result{Status: "error", Message: appErr.Message})
		return
	}
	applog.FromContext(r.Context()).ErrorContext(r.Context(), "Stub gateway action failed", applog.FieldAction, action, applog.FieldError, err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
