package form

import (
	"context"

	"github.com/Koushikchikkond/vouchers/internal/core"
	"github.com/Koushikchikkond/vouchers/internal/events"
	"github.com/Koushikchikkond/vouchers/internal/gateway"
	"github.com/Koushikchikkond/vouchers/internal/log"
	"github.com/Koushikchikkond/vouchers/internal/session"
)

type TransactionSaver interface {
	SaveTransaction(ctx context.Context, p gateway.SavePayload) (gateway.Result, error)
}

type NodeChecker interface {
	Require(ctx context.Context, s session.Session, node string) error
}

type Submitter struct {
	saver  TransactionSaver
	nodes  NodeChecker
	events events.Publisher
	logger *log.Logger
}

func NewSubmitter(saver TransactionSaver, nodes NodeChecker, pub events.Publisher, logger *log.Logger) *Submitter {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Submitter{
		saver:  saver,
		nodes:  nodes,
		events: pub,
		logger: logger.WithComponent(log.ComponentForm),
	}
}

// Submit saves the draft under node. A draft that fails validation never
// reaches the gateway. On success the draft is cleared for the next entry;
// on a gateway failure it is left as it was and the error is a
// core.SubmissionError. Nothing is retried. Simulated saves publish no
// event.
func (s *Submitter) Submit(ctx context.Context, sess session.Session, node string, d *Draft) (gateway.Result, error) {
	if err := d.Validate(); err != nil {
		s.logger.DebugContext(ctx, "Draft rejected",
			log.FieldOperation, log.OpValidate,
			log.FieldError, err)
		return gateway.Result{}, err
	}
	if err := s.nodes.Require(ctx, sess, node); err != nil {
		return gateway.Result{}, err
	}

	payload := d.Payload(sess.Username, node)
	res, err := s.saver.SaveTransaction(ctx, payload)
	if err == nil {
		err = gateway.CheckResult(gateway.ActionSaveTransaction, res)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Transaction save failed",
			log.NewFields().
				WithOperation(log.OpSubmit).
				WithScope(sess.Username, node).
				WithError(err).
				ToSlice()...)
		return res, &core.SubmissionError{Cause: err}
	}

	fields := log.NewFields().
		WithOperation(log.OpSubmit).
		WithScope(sess.Username, node).
		WithTransaction(string(payload.Type), string(payload.Amount), string(payload.Category))
	if res.Simulated {
		fields[log.FieldSimulated] = true
		s.logger.WarnContext(ctx, "Gateway not configured, transaction not persisted", fields.ToSlice()...)
	} else {
		s.logger.InfoContext(ctx, "Transaction saved", fields.ToSlice()...)
	}

	d.clearEntry()
	if res.Simulated {
		return res, nil
	}

	e := events.New(events.TransactionSaved, sess.Username, node)
	e.Type = payload.Type
	e.Amount = payload.Amount
	e.Category = payload.Category
	events.Emit(ctx, s.events, e)
	return res, nil
}
