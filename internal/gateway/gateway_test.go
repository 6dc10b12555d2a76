package gateway

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gateway-sim/internal/domain"
	"gateway-sim/internal/metrics"
	"gateway-sim/internal/store"
)

func sequentialIDs() func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("T%03d", n.Add(1))
	}
}

func newTestGateway() (*Gateway, *store.MemoryStore) {
	repo := store.NewMemoryStore()
	return New(repo, WithIDGenerator(sequentialIDs())), repo
}

func card() *domain.CreditCard {
	return &domain.CreditCard{
		Number:         "5105105105105100",
		ExpirationDate: "05/2030",
		CVV:            "123",
	}
}

func TestSale_Authorized(t *testing.T) {
	g, _ := newTestGateway()
	before := testutil.ToFloat64(metrics.SalesTotal.WithLabelValues(metrics.OutcomeAuthorized))

	result, err := g.Sale(domain.SaleRequest{Amount: "1000.00", CreditCard: card()})
	require.NoError(t, err)

	require.True(t, result.Success())
	assert.Zero(t, result.Errors().Size())
	txn := result.Transaction()
	require.NotNil(t, txn)
	assert.Equal(t, "T001", txn.ID())
	assert.Equal(t, domain.StatusAuthorized, txn.Status())
	assert.Equal(t, domain.TypeSale, txn.Type())
	assert.Equal(t, "1000", txn.ProcessorResponseCode())
	assert.Equal(t, "510510", txn.CreditCard().Bin())
	assert.Equal(t, "5100", txn.CreditCard().Last4())

	after := testutil.ToFloat64(metrics.SalesTotal.WithLabelValues(metrics.OutcomeAuthorized))
	assert.Equal(t, before+1, after)
}

func TestSale_DeclinedByTableCode(t *testing.T) {
	g, _ := newTestGateway()

	result, err := g.Sale(domain.SaleRequest{Amount: "2000.00", CreditCard: card()})
	require.NoError(t, err)

	assert.False(t, result.Success())
	assert.Zero(t, result.Errors().Size())
	txn := result.Transaction()
	require.NotNil(t, txn)
	assert.Equal(t, domain.StatusProcessorDeclined, txn.Status())
	assert.Equal(t, domain.TypeSale, txn.Type())
	assert.Equal(t, "2000", txn.ProcessorResponseCode())
	assert.Equal(t, "Do Not Honor", txn.ProcessorResponseText())
}

func TestSale_DeclinedByRange(t *testing.T) {
	g, _ := newTestGateway()

	result, err := g.Sale(domain.SaleRequest{Amount: "2070.00", CreditCard: card()})
	require.NoError(t, err)

	assert.False(t, result.Success())
	assert.Equal(t, "2046", result.Transaction().ProcessorResponseCode())
	assert.Equal(t, "Declined", result.Transaction().ProcessorResponseText())
}

func TestSale_ApprovalCodes(t *testing.T) {
	g, _ := newTestGateway()

	for _, amount := range []string{"1001.00", "1002.00"} {
		result, err := g.Sale(domain.SaleRequest{Amount: amount, CreditCard: card()})
		require.NoError(t, err)
		assert.True(t, result.Success(), amount)
	}
}

func TestSale_ValidationFailure(t *testing.T) {
	g, repo := newTestGateway()
	before := testutil.ToFloat64(metrics.SalesTotal.WithLabelValues(metrics.OutcomeInvalid))

	result, err := g.Sale(domain.SaleRequest{Amount: "", Billing: &domain.Address{PostalCode: "20000"}})
	require.NoError(t, err)

	assert.False(t, result.Success())
	assert.Nil(t, result.Transaction())
	assert.Equal(t, []string{
		domain.MsgAmountRequired,
		domain.MsgBillingWithoutCard,
		domain.MsgPaymentMethodNeeded,
	}, result.Errors().Messages())

	// Registered before validation ran.
	require.Equal(t, 1, repo.Len())
	txn, err := g.Find("T001")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAuthorizing, txn.Status())
	assert.Empty(t, txn.Type())

	after := testutil.ToFloat64(metrics.SalesTotal.WithLabelValues(metrics.OutcomeInvalid))
	assert.Equal(t, before+1, after)
}

func TestSale_AmountMessages(t *testing.T) {
	g, _ := newTestGateway()

	tests := []struct {
		amount string
		want   string
	}{
		{"", domain.MsgAmountRequired},
		{"12.3.4", domain.MsgAmountInvalidFormat},
		{"-5.00", domain.MsgAmountNegative},
		{"10000000.00", domain.MsgAmountTooLarge},
	}
	for _, tt := range tests {
		result, err := g.Sale(domain.SaleRequest{Amount: tt.amount, CreditCard: card()})
		require.NoError(t, err)
		assert.Equal(t, []string{tt.want}, result.Errors().Messages(), tt.amount)
	}
}

func TestFind(t *testing.T) {
	g, _ := newTestGateway()

	result, err := g.Sale(domain.SaleRequest{Amount: "10.00", CreditCard: card()})
	require.NoError(t, err)

	got, err := g.Find(result.Transaction().ID())
	require.NoError(t, err)
	assert.Same(t, result.Transaction(), got)

	_, err = g.Find("missing")
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestSubmitForSettlement(t *testing.T) {
	g, _ := newTestGateway()
	okBefore := testutil.ToFloat64(metrics.SettlementsTotal.WithLabelValues(metrics.ResultOK))
	faultBefore := testutil.ToFloat64(metrics.SettlementsTotal.WithLabelValues(metrics.ResultFault))

	result, err := g.Sale(domain.SaleRequest{Amount: "10.00", CreditCard: card()})
	require.NoError(t, err)
	id := result.Transaction().ID()

	require.NoError(t, g.SubmitForSettlement(id))
	txn, _ := g.Find(id)
	assert.Equal(t, domain.StatusSubmittedForSettlement, txn.Status())

	err = g.SubmitForSettlement(id)
	var notAuthorized *domain.NotAuthorizedError
	assert.ErrorAs(t, err, &notAuthorized)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(metrics.SettlementsTotal.WithLabelValues(metrics.ResultOK)))
	assert.Equal(t, faultBefore+1, testutil.ToFloat64(metrics.SettlementsTotal.WithLabelValues(metrics.ResultFault)))
}

func TestSubmitForSettlement_Declined(t *testing.T) {
	g, _ := newTestGateway()

	result, err := g.Sale(domain.SaleRequest{Amount: "2001.00", CreditCard: card()})
	require.NoError(t, err)

	err = g.SubmitForSettlement(result.Transaction().ID())
	assert.EqualError(t, err, "Transaction not authorized")
	assert.Equal(t, domain.StatusProcessorDeclined, result.Transaction().Status())
}

func TestSubmitForSettlement_NotFound(t *testing.T) {
	g, _ := newTestGateway()
	assert.ErrorIs(t, g.SubmitForSettlement("missing"), domain.ErrTransactionNotFound)
}

func TestSale_RegistryFailure(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Save", mock.Anything).Return(errors.New("disk full"))
	g := New(repo, WithIDGenerator(sequentialIDs()))

	result, err := g.Sale(domain.SaleRequest{Amount: "10.00", CreditCard: card()})
	assert.Nil(t, result)
	assert.ErrorContains(t, err, "disk full")
	repo.AssertNumberOfCalls(t, "Save", 1)
}

func TestSale_SavesBeforeAndAfterAuthorization(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Save", mock.AnythingOfType("*domain.Transaction")).Return(nil).Twice()
	g := New(repo, WithIDGenerator(sequentialIDs()))

	result, err := g.Sale(domain.SaleRequest{Amount: "10.00", CreditCard: card()})
	require.NoError(t, err)
	assert.True(t, result.Success())
	repo.AssertExpectations(t)
}

func TestReset(t *testing.T) {
	g, repo := newTestGateway()
	_, err := g.Sale(domain.SaleRequest{Amount: "10.00", CreditCard: card()})
	require.NoError(t, err)

	assert.Equal(t, 1, g.Len())
	g.Reset()
	assert.Zero(t, g.Len())
	assert.Zero(t, repo.Len())
	_, err = g.Find("T001")
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestTransactionURL(t *testing.T) {
	g, _ := newTestGateway()
	assert.Equal(t, "http://gateway.example.com/transactions", g.TransactionURL())

	custom := New(store.NewMemoryStore(), WithTransactionURL("http://localhost/txns"))
	assert.Equal(t, "http://localhost/txns", custom.TransactionURL())
}

func TestSale_Concurrent(t *testing.T) {
	g, repo := newTestGateway()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = g.Sale(domain.SaleRequest{Amount: "10.00", CreditCard: card()})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, repo.Len())
}

func TestSubmitForSettlement_ConcurrentSettlesOnce(t *testing.T) {
	g, _ := newTestGateway()
	result, err := g.Sale(domain.SaleRequest{Amount: "10.00", CreditCard: card()})
	require.NoError(t, err)
	id := result.Transaction().ID()

	const callers = 32
	var (
		wg            sync.WaitGroup
		settled       atomic.Int64
		notAuthorized atomic.Int64
	)
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			err := g.SubmitForSettlement(id)
			var notAuth *domain.NotAuthorizedError
			switch {
			case err == nil:
				settled.Add(1)
			case errors.As(err, &notAuth):
				notAuthorized.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.EqualValues(t, 1, settled.Load())
	assert.EqualValues(t, callers-1, notAuthorized.Load())

	txn, err := g.Find(id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSubmittedForSettlement, txn.Status())
	assert.Len(t, txn.History(), 2)
}
