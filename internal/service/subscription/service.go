package subscription

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ignite/newsletter-subscriber/internal/domain"
	"github.com/ignite/newsletter-subscriber/internal/metrics"
	"github.com/ignite/newsletter-subscriber/internal/pkg/logger"
)

// Outcome is the terminal result of one subscription request.
type Outcome string

const (
	OutcomeSubscribed        Outcome = "subscribed"
	OutcomeAlreadySubscribed Outcome = "already_subscribed"
	OutcomeStorageFailure    Outcome = "storage_failure"
	OutcomeInvalid           Outcome = "invalid_request"
)

// Result describes how a request ended. Err is set only for OutcomeInvalid.
type Result struct {
	Outcome Outcome
	Err     *ValidationError
}

func invalid(err error) Result {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		verr = ErrMalformedBody
	}
	return Result{Outcome: OutcomeInvalid, Err: verr}
}

// Config wires the service's collaborators. Store is required.
type Config struct {
	Store   Store
	Metrics *metrics.Metrics
}

// Service implements the subscription workflow. It is safe for concurrent
// use; the only shared state is the Store.
type Service struct {
	store   Store
	metrics *metrics.Metrics
}

// NewService creates a subscription service from cfg.
func NewService(cfg Config) (*Service, error) {
	if cfg.Store == nil {
		return nil, errors.New("subscription: store is required")
	}
	return &Service{store: cfg.Store, metrics: cfg.Metrics}, nil
}

// SubscribeJSON runs the whole workflow on a raw JSON request body.
func (s *Service) SubscribeJSON(ctx context.Context, body []byte) Result {
	email, err := DecodeEmail(body)
	if err != nil {
		return s.finish(invalid(err))
	}
	return s.SubscribeEmail(ctx, email)
}

// SubscribePayload runs the workflow on an already-decoded JSON value.
func (s *Service) SubscribePayload(ctx context.Context, payload any) Result {
	email, err := ExtractEmail(payload)
	if err != nil {
		return s.finish(invalid(err))
	}
	return s.SubscribeEmail(ctx, email)
}

// SubscribeEmail validates email and records it unless it is already
// stored. Only a negative lookup leads to a write.
func (s *Service) SubscribeEmail(ctx context.Context, email string) Result {
	trimmed := strings.TrimSpace(email)
	if !domain.IsValidEmail(trimmed) {
		return s.finish(Result{Outcome: OutcomeInvalid, Err: ErrInvalidFormat})
	}
	return s.finish(s.record(ctx, domain.NormalizeEmail(trimmed)))
}

// record performs the lookup and insert. A panic from the store is
// recovered and reported as a storage failure.
func (s *Service) record(ctx context.Context, email string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("subscription error", "email", email, "error", fmt.Sprint(r))
			res = Result{Outcome: OutcomeStorageFailure}
		}
	}()

	if s.store.IsSubscribed(ctx, email) {
		return Result{Outcome: OutcomeAlreadySubscribed}
	}

	if !s.store.AddSubscriber(ctx, email) {
		logger.Error("failed to add subscriber", "email", email)
		return Result{Outcome: OutcomeStorageFailure}
	}

	logger.Info("successfully subscribed", "email", email)
	return Result{Outcome: OutcomeSubscribed}
}

// Reject records a request that an adapter turned away before the workflow
// could decode it.
func (s *Service) Reject(err *ValidationError) Result {
	return s.finish(Result{Outcome: OutcomeInvalid, Err: err})
}

func (s *Service) finish(res Result) Result {
	s.metrics.ObserveOutcome(string(res.Outcome))
	return res
}
