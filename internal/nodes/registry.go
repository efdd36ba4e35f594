// Package nodes manages the per-user list of nodes (projects or cost
// centres). The backend creates a node implicitly on its first transaction,
// so nodes created on this client are kept in local state until then.
package nodes

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/singleflight"

	"github.com/Koushikchikkond/vouchers/internal/cache"
	"github.com/Koushikchikkond/vouchers/internal/core"
	"github.com/Koushikchikkond/vouchers/internal/events"
	"github.com/Koushikchikkond/vouchers/internal/gateway"
	"github.com/Koushikchikkond/vouchers/internal/log"
	"github.com/Koushikchikkond/vouchers/internal/session"
	"github.com/Koushikchikkond/vouchers/internal/storage"
)

const MaxNameLength = 100

var (
	ErrUnknownNode = errors.New("unknown node")
	ErrNodeExists  = errors.New("node already exists")
	ErrNameTooLong = fmt.Errorf("node name longer than %d characters", MaxNameLength)
)

type Gateway interface {
	GetNodes(ctx context.Context, user string) ([]string, error)
	UpdateNode(ctx context.Context, user, oldNode, newNode string) (gateway.Result, error)
	DeleteNode(ctx context.Context, user, node string) (gateway.Result, error)
}

// LocalStore records nodes created on this client.
type LocalStore interface {
	AddLocalNode(ctx context.Context, user, name string) error
	LocalNodes(ctx context.Context, user string) ([]string, error)
	RenameLocalNode(ctx context.Context, user, oldName, newName string) error
	RemoveLocalNode(ctx context.Context, user, name string) error
}

type Registry struct {
	gw     Gateway
	local  LocalStore
	cache  cache.Cache[[]string]
	group  singleflight.Group
	events events.Publisher
	logger *log.Logger
}

func NewRegistry(gw Gateway, local LocalStore, c cache.Cache[[]string], pub events.Publisher, logger *log.Logger) *Registry {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Registry{
		gw:     gw,
		local:  local,
		cache:  c,
		events: pub,
		logger: logger.WithComponent(log.ComponentNodes),
	}
}

func cacheKey(user string) string { return "nodes:" + user }

// List returns the backend's nodes followed by local ones it does not know
// yet, without duplicates.
func (r *Registry) List(ctx context.Context, s session.Session) ([]string, error) {
	key := cacheKey(s.Username)
	if cached, ok := r.cache.Get(key); ok {
		return append([]string(nil), cached...), nil
	}

	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		remote, err := r.gw.GetNodes(ctx, s.Username)
		if err != nil {
			return nil, fmt.Errorf("get nodes: %w", err)
		}
		local, err := r.local.LocalNodes(ctx, s.Username)
		if err != nil {
			return nil, fmt.Errorf("local nodes: %w", err)
		}
		merged := merge(remote, local)
		r.cache.Set(key, merged)

		r.logger.DebugContext(ctx, "Nodes loaded",
			log.FieldOperation, log.OpList,
			log.FieldUser, s.Username,
			log.FieldRows, len(merged))
		return merged, nil
	})
	if err != nil {
		return nil, err
	}
	return append([]string(nil), v.([]string)...), nil
}

// Create declares a new node for the user.
func (r *Registry) Create(ctx context.Context, s session.Session, name string) (string, error) {
	name, err := checkName(name)
	if err != nil {
		return "", err
	}
	existing, err := r.List(ctx, s)
	if err != nil {
		return "", err
	}
	if slices.Contains(existing, name) {
		return "", ErrNodeExists
	}

	if err := r.local.AddLocalNode(ctx, s.Username, name); err != nil {
		if errors.Is(err, storage.ErrDuplicateNode) {
			return "", ErrNodeExists
		}
		return "", err
	}
	r.Invalidate(ctx, s)

	r.logger.InfoContext(ctx, "Node created",
		log.FieldOperation, log.OpCreate,
		log.FieldUser, s.Username,
		log.FieldNode, name)
	return name, nil
}

func (r *Registry) Rename(ctx context.Context, s session.Session, oldName, newName string) (gateway.Result, error) {
	newName, err := checkName(newName)
	if err != nil {
		return gateway.Result{}, err
	}
	existing, err := r.List(ctx, s)
	if err != nil {
		return gateway.Result{}, err
	}
	if !slices.Contains(existing, oldName) {
		return gateway.Result{}, fmt.Errorf("%w: %q", ErrUnknownNode, oldName)
	}
	if newName == oldName {
		return gateway.Result{Status: gateway.StatusSuccess}, nil
	}
	if slices.Contains(existing, newName) {
		return gateway.Result{}, ErrNodeExists
	}

	res, err := r.gw.UpdateNode(ctx, s.Username, oldName, newName)
	if err != nil {
		return res, fmt.Errorf("rename node: %w", err)
	}
	if err := r.local.RenameLocalNode(ctx, s.Username, oldName, newName); err != nil {
		r.logger.WarnContext(ctx, "Local node rename failed",
			log.FieldNode, oldName,
			log.FieldError, err)
	}
	r.Invalidate(ctx, s)
	r.ack(ctx, gateway.ActionUpdateNode, s, newName, res)

	if !res.Simulated {
		e := events.New(events.NodeRenamed, s.Username, newName)
		e.PreviousNode = oldName
		events.Emit(ctx, r.events, e)
	}
	return res, nil
}

// Delete removes a node and, on the backend, every transaction under it.
func (r *Registry) Delete(ctx context.Context, s session.Session, name string) (gateway.Result, error) {
	if err := r.Require(ctx, s, name); err != nil {
		return gateway.Result{}, err
	}

	res, err := r.gw.DeleteNode(ctx, s.Username, name)
	if err != nil {
		return res, fmt.Errorf("delete node: %w", err)
	}
	if err := r.local.RemoveLocalNode(ctx, s.Username, name); err != nil {
		r.logger.WarnContext(ctx, "Local node removal failed",
			log.FieldNode, name,
			log.FieldError, err)
	}
	r.Invalidate(ctx, s)
	r.ack(ctx, gateway.ActionDeleteNode, s, name, res)

	if !res.Simulated {
		events.Emit(ctx, r.events, events.New(events.NodeDeleted, s.Username, name))
	}
	return res, nil
}

// Require fails with ErrUnknownNode unless name is one of the user's nodes.
func (r *Registry) Require(ctx context.Context, s session.Session, name string) error {
	if strings.TrimSpace(name) == "" {
		return &core.ValidationError{Field: core.FieldNode, Err: core.ErrEmptyNode}
	}
	existing, err := r.List(ctx, s)
	if err != nil {
		return err
	}
	if !slices.Contains(existing, name) {
		return fmt.Errorf("%w: %q", ErrUnknownNode, name)
	}
	return nil
}

// Invalidate drops the cached list for the session's user after a change.
func (r *Registry) Invalidate(_ context.Context, s session.Session) {
	r.cache.Delete(cacheKey(s.Username))
}

// Teardown is the session teardown hook: every cached view goes, not only
// the departing user's.
func (r *Registry) Teardown(ctx context.Context, s session.Session) {
	n := r.cache.Size()
	r.cache.Purge()
	r.logger.DebugContext(ctx, "Node cache purged", log.FieldUser, s.Username, "entries", n)
}

func (r *Registry) ack(ctx context.Context, action string, s session.Session, node string, res gateway.Result) {
	if res.Simulated {
		r.logger.WarnContext(ctx, "Gateway not configured, change not persisted",
			log.FieldAction, action,
			log.FieldUser, s.Username,
			log.FieldNode, node,
			log.FieldSimulated, true)
	}
}

func checkName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &core.ValidationError{Field: core.FieldNode, Err: core.ErrEmptyNode}
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", &core.ValidationError{Field: core.FieldNode, Err: ErrNameTooLong}
	}
	return name, nil
}

func merge(remote, local []string) []string {
	seen := make(map[string]struct{}, len(remote)+len(local))
	out := make([]string, 0, len(remote)+len(local))
	for _, list := range [][]string{remote, local} {
		for _, n := range list {
			if n == "" {
				continue
			}
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	return out
}
