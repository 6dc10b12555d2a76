// Package gateway is the client-facing facade of the simulator: it runs
// sales through validation and authorization, looks transactions up and
// submits them for settlement.
package gateway

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"gateway-sim/internal/config"
	"gateway-sim/internal/domain"
	"gateway-sim/internal/logger"
	"gateway-sim/internal/metrics"
	"gateway-sim/internal/store"
)

// Gateway simulates a payment gateway client.
type Gateway struct {
	repo           store.Repository
	log            *slog.Logger
	newID          func() string
	transactionURL string
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) { g.log = l }
}

// WithIDGenerator replaces the uuid-based transaction id generator.
func WithIDGenerator(fn func() string) Option {
	return func(g *Gateway) { g.newID = fn }
}

// WithTransactionURL sets the URL reported by TransactionURL.
func WithTransactionURL(url string) Option {
	return func(g *Gateway) { g.transactionURL = url }
}

// New creates a gateway backed by repo.
func New(repo store.Repository, opts ...Option) *Gateway {
	g := &Gateway{
		repo:           repo,
		log:            logger.Discard(),
		newID:          uuid.NewString,
		transactionURL: config.DefaultTransactionURL,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Sale submits a charge. The transaction is registered before validation, so
// even rejected submissions can be found by id. Validation failures and
// processor declines are reported through the Result; the error is only set
// when the registry fails.
func (g *Gateway) Sale(req domain.SaleRequest) (domain.Result, error) {
	txn := domain.NewTransaction(g.newID(), req)
	if err := g.repo.Save(txn); err != nil {
		return nil, fmt.Errorf("register transaction %s: %w", txn.ID(), err)
	}

	if errs := txn.Errors(); errs.Size() > 0 {
		metrics.SalesTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		g.log.Info("sale rejected",
			"txn_id", txn.ID(),
			"errors", errs.Messages(),
		)
		return domain.NewErrorResult(errs, nil), nil
	}

	if err := txn.Authorize(); err != nil {
		return nil, fmt.Errorf("authorize transaction %s: %w", txn.ID(), err)
	}
	if err := g.repo.Save(txn); err != nil {
		return nil, fmt.Errorf("save transaction %s: %w", txn.ID(), err)
	}

	g.log.Info("sale processed",
		"txn_id", txn.ID(),
		"amount", txn.Amount(),
		"status", txn.Status(),
		"processor_response_code", txn.ProcessorResponseCode(),
	)

	if txn.Status() == domain.StatusAuthorized {
		metrics.SalesTotal.WithLabelValues(metrics.OutcomeAuthorized).Inc()
		return domain.NewSuccessResult(txn), nil
	}
	metrics.SalesTotal.WithLabelValues(metrics.OutcomeDeclined).Inc()
	return domain.NewErrorResult(domain.NewErrors(), txn), nil
}

// Find returns the transaction registered under id.
func (g *Gateway) Find(id string) (*domain.Transaction, error) {
	txn, err := g.repo.Get(id)
	if err != nil {
		return nil, fmt.Errorf("find transaction %s: %w", id, err)
	}
	return txn, nil
}

// SubmitForSettlement settles the authorized transaction registered under id.
// Settling a transaction in any other status returns *domain.NotAuthorizedError.
func (g *Gateway) SubmitForSettlement(id string) error {
	txn, err := g.Find(id)
	if err != nil {
		return err
	}
	if err := txn.SubmitForSettlement(); err != nil {
		metrics.SettlementsTotal.WithLabelValues(metrics.ResultFault).Inc()
		g.log.Warn("settlement refused", "txn_id", id, "status", txn.Status())
		return err
	}
	if err := g.repo.Save(txn); err != nil {
		return fmt.Errorf("save transaction %s: %w", id, err)
	}
	metrics.SettlementsTotal.WithLabelValues(metrics.ResultOK).Inc()
	g.log.Info("submitted for settlement", "txn_id", id)
	return nil
}

// List returns every registered transaction sorted by id.
func (g *Gateway) List() ([]*domain.Transaction, error) {
	return g.repo.List()
}

// Len returns the number of registered transactions.
func (g *Gateway) Len() int {
	return g.repo.Len()
}

// Reset clears the transaction registry.
func (g *Gateway) Reset() {
	g.log.Info("registry reset", "transactions", g.repo.Len())
	g.repo.Reset()
}

// TransactionURL is the endpoint a transparent redirect form posts to.
func (g *Gateway) TransactionURL() string {
	return g.transactionURL
}
