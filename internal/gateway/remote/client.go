package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Koushikchikkond/vouchers/internal/core"
	"github.com/Koushikchikkond/vouchers/internal/gateway"
)

// maxResponseBytes bounds a decoded response; exports carry image blobs.
const maxResponseBytes = 64 << 20

// Client talks to the gateway over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ gateway.Gateway = (*Client)(nil)

// New creates a client for the gateway at baseURL with a pooled transport.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	return NewWithHTTPClient(baseURL, newHTTPClientWithPooling(timeout))
}

func NewWithHTTPClient(baseURL string, hc *http.Client) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("gateway URL must be http or https, got %q", u.Scheme)
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: hc}, nil
}

// newHTTPClientWithPooling creates an HTTP client with connection pooling,
// keep-alive and an overall request timeout.
func newHTTPClientWithPooling(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: 1 * time.Second,

		ForceAttemptHTTP2: true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// envelope is the part of every response that carries the outcome.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// GetNodes implements gateway.NodeReader
func (c *Client) GetNodes(ctx context.Context, user string) ([]string, error) {
	var resp struct {
		envelope
		Nodes []string `json:"nodes"`
	}
	if err := c.get(ctx, gateway.ActionGetNodes, url.Values{"user": {user}}, &resp); err != nil {
		return nil, err
	}
	if err := checkRead(gateway.ActionGetNodes, resp.envelope); err != nil {
		return nil, err
	}
	if resp.Nodes == nil {
		return []string{}, nil
	}
	return resp.Nodes, nil
}

// GetNodeSummary implements gateway.SummaryReader
func (c *Client) GetNodeSummary(ctx context.Context, user, node string) (gateway.NodeSummary, error) {
	var resp struct {
		envelope
		gateway.NodeSummary
	}
	params := url.Values{"user": {user}, "node": {node}}
	if err := c.get(ctx, gateway.ActionGetNodeSummary, params, &resp); err != nil {
		return gateway.NodeSummary{}, err
	}
	if err := checkRead(gateway.ActionGetNodeSummary, resp.envelope); err != nil {
		return gateway.NodeSummary{}, err
	}
	return resp.NodeSummary, nil
}

// GetHistory implements gateway.HistoryReader
func (c *Client) GetHistory(ctx context.Context, q gateway.HistoryQuery) ([]core.Transaction, error) {
	params := url.Values{
		"user":      {q.User},
		"node":      {q.Node},
		"startDate": {q.StartDate},
		"endDate":   {q.EndDate},
	}
	return c.transactions(ctx, gateway.ActionGetHistory, params)
}

// GetAllNodesExport implements gateway.HistoryReader
func (c *Client) GetAllNodesExport(ctx context.Context, user string) ([]core.Transaction, error) {
	return c.transactions(ctx, gateway.ActionGetAllNodesExport, url.Values{"user": {user}})
}

func (c *Client) transactions(ctx context.Context, action string, params url.Values) ([]core.Transaction, error) {
	var resp struct {
		envelope
		Transactions []core.Transaction `json:"transactions"`
	}
	if err := c.get(ctx, action, params, &resp); err != nil {
		return nil, err
	}
	if err := checkRead(action, resp.envelope); err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}

// UpdateNode implements gateway.NodeWriter
func (c *Client) UpdateNode(ctx context.Context, user, oldNode, newNode string) (gateway.Result, error) {
	return c.post(ctx, gateway.ActionUpdateNode, struct {
		User    string `json:"user"`
		OldNode string `json:"oldNode"`
		NewNode string `json:"newNode"`
	}{user, oldNode, newNode})
}

// DeleteNode implements gateway.NodeWriter
func (c *Client) DeleteNode(ctx context.Context, user, node string) (gateway.Result, error) {
	return c.post(ctx, gateway.ActionDeleteNode, struct {
		User string `json:"user"`
		Node string `json:"node"`
	}{user, node})
}

// SaveTransaction implements gateway.TransactionWriter
func (c *Client) SaveTransaction(ctx context.Context, p gateway.SavePayload) (gateway.Result, error) {
	return c.post(ctx, gateway.ActionSaveTransaction, p)
}

// UpdateTransaction implements gateway.TransactionWriter
func (c *Client) UpdateTransaction(ctx context.Context, p gateway.UpdatePayload) (gateway.Result, error) {
	return c.post(ctx, gateway.ActionUpdateTransaction, p)
}

// DeleteTransaction implements gateway.TransactionWriter
func (c *Client) DeleteTransaction(ctx context.Context, id core.RowID) (gateway.Result, error) {
	return c.post(ctx, gateway.ActionDeleteTransaction, struct {
		RowID core.RowID `json:"rowId"`
	}{id})
}

// RequestPasswordReset implements gateway.PasswordReset
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (gateway.Result, error) {
	var resp envelope
	if err := c.get(ctx, gateway.ActionRequestPasswordReset, url.Values{"email": {email}}, &resp); err != nil {
		return gateway.Result{}, err
	}
	res := gateway.Result{Status: resp.Status, Message: resp.Message}
	return res, gateway.CheckResult(gateway.ActionRequestPasswordReset, res)
}

// VerifyOTP implements gateway.PasswordReset
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (gateway.Result, error) {
	return c.post(ctx, gateway.ActionVerifyOTP, struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}{email, otp})
}

// ResetPassword implements gateway.PasswordReset
func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) (gateway.Result, error) {
	return c.post(ctx, gateway.ActionResetPassword, struct {
		Email       string `json:"email"`
		OTP         string `json:"otp"`
		NewPassword string `json:"newPassword"`
	}{email, otp, newPassword})
}

func (c *Client) get(ctx context.Context, action string, params url.Values, out any) error {
	q := url.Values{"action": {action}}
	for k, v := range params {
		q[k] = v
	}
	sep := "?"
	if strings.Contains(c.baseURL, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+sep+q.Encode(), nil)
	if err != nil {
		return &gateway.NetworkError{Action: action, Err: err}
	}
	return c.do(req, action, out)
}

// post sends params as a JSON object with the action name merged in.
func (c *Client) post(ctx context.Context, action string, params any) (gateway.Result, error) {
	body, err := withAction(action, params)
	if err != nil {
		return gateway.Result{}, fmt.Errorf("encode %s request: %w", action, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return gateway.Result{}, &gateway.NetworkError{Action: action, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	var resp envelope
	if err := c.do(req, action, &resp); err != nil {
		return gateway.Result{}, err
	}
	res := gateway.Result{Status: resp.Status, Message: resp.Message}
	if err := gateway.CheckResult(action, res); err != nil {
		return res, err
	}
	slog.DebugContext(ctx, "Gateway write acknowledged", "action", action)
	return res, nil
}

func (c *Client) do(req *http.Request, action string, out any) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return &gateway.NetworkError{Action: action, Err: err}
	}
	defer resp.Body.Close()

	slog.DebugContext(req.Context(), "Gateway call completed",
		"action", action,
		"method", req.Method,
		"status_code", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &gateway.NetworkError{Action: action, StatusCode: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return &gateway.NetworkError{Action: action, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// checkRead accepts a read response with no status or a success status.
func checkRead(action string, env envelope) error {
	if env.Status == "" {
		return nil
	}
	return gateway.CheckResult(action, gateway.Result{Status: env.Status, Message: env.Message})
}

func withAction(action string, params any) ([]byte, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	name, _ := json.Marshal(action)
	fields["action"] = name
	return json.Marshal(fields)
}
