package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/Koushikchikkond/vouchers/internal/gateway"
	"github.com/Koushikchikkond/vouchers/internal/gateway/memory"
	"github.com/Koushikchikkond/vouchers/internal/log"
	"github.com/Koushikchikkond/vouchers/internal/middleware/ratelimit"
	"github.com/Koushikchikkond/vouchers/internal/middleware/trace"
)

// otpLogger logs the OTP the stub issues, since it sends no email.
type otpLogger struct {
	*memory.Store
	logger *log.Logger
}

func (s otpLogger) RequestPasswordReset(ctx context.Context, email string) (gateway.Result, error) {
	res, err := s.Store.RequestPasswordReset(ctx, email)
	if err == nil {
		if otp, found := s.PendingOTP(email); found {
			s.logger.InfoContext(ctx, "Password reset OTP issued", "email", email, "otp", otp)
		}
	}
	return res, err
}

// StubHandler serves store with request logging, request ids and a per
// caller rate limit.
func StubHandler(store *memory.Store, logger *log.Logger, perMinute int) (http.Handler, *trace.Middleware) {
	tr := trace.New()
	limiter := ratelimit.NewLimiter(perMinute)

	var h http.Handler = memory.Handler(otpLogger{Store: store, logger: logger.WithComponent(log.ComponentStub)})
	h = limiter.Middleware(ratelimit.ClientKey)(h)
	h = tr.Handler(h)
	h = log.Middleware(logger, log.ComponentStub)(h)
	return h, tr
}

func (r *Runner) runStubGateway(ctx context.Context, args []string) error {
	fs := r.flagSet("stub-gateway")
	port := fs.String("port", r.Config.StubPort, "Port to listen on")
	rate := fs.Int("rate", 120, "Requests per minute per caller, 0 for no limit")
	seed := fs.String("seed", "", "Comma-separated nodes to create for the configured user")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	store := memory.New()
	if *seed != "" {
		store.Seed(r.Config.Username, strings.Split(*seed, ",")...)
	}
	handler, tr := StubHandler(store, r.Logger, *rate)

	srv := &http.Server{
		Addr:           net.JoinHostPort("", *port),
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := GracefulShutdown(ctx, r.Logger, 30*time.Second, func(shutdownCtx context.Context) {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			r.Logger.Error("Server shutdown error", log.FieldError, err)
		}
	})

	r.Logger.Info("Starting stub gateway", "addr", srv.Addr, "rate_per_minute", *rate)
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		cancel()
		<-done
		return err
	}
	<-done

	m := tr.Metrics()
	r.Logger.Info("Stub gateway stopped",
		"requests", m.TotalRequests,
		"failed_requests", m.FailedRequests)
	return nil
}
