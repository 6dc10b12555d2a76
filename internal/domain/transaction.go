// Package domain contains the transaction model, validation rules and coded
// gateway responses of the simulator.
package domain

import (
	"sync"
	"time"
)

// Transaction statuses, as reported by the gateway.
const (
	StatusSettlementFailed       = "settlement_failed"
	StatusGatewayRejected        = "gateway_rejected"
	StatusVoided                 = "voided"
	StatusSettled                = "settled"
	StatusAuthorized             = "authorized"
	StatusUnknown                = "unknown"
	StatusProcessorDeclined      = "processor_declined"
	StatusAuthorizing            = "authorizing"
	StatusSubmittedForSettlement = "submitted_for_settlement"
	StatusFailed                 = "failed"
)

// TypeSale is the type assigned to every charge attempted through Sale.
const TypeSale = "sale"

// CreditCard holds the card attributes of a sale.
type CreditCard struct {
	Number         string
	ExpirationDate string
	CardholderName string
	CVV            string
}

// Bin returns the first six digits of the card number.
func (c *CreditCard) Bin() string {
	if c == nil {
		return ""
	}
	if len(c.Number) < 6 {
		return c.Number
	}
	return c.Number[:6]
}

// Last4 returns the last four digits of the card number.
func (c *CreditCard) Last4() string {
	if c == nil {
		return ""
	}
	if len(c.Number) < 4 {
		return c.Number
	}
	return c.Number[len(c.Number)-4:]
}

// Token returns the vaulted payment method token. The simulator never vaults,
// so every card shares the same token.
func (c *CreditCard) Token() string {
	return "AAAA"
}

// Customer holds the customer attributes of a sale.
type Customer struct {
	FirstName string
	LastName  string
	Company   string
	Phone     string
	Fax       string
	Website   string
	Email     string
}

// Address is a billing or shipping address.
type Address struct {
	FirstName       string
	StreetAddress   string
	ExtendedAddress string
	Locality        string
	Region          string
	PostalCode      string
}

// SaleRequest is the attribute set a caller submits for a sale.
type SaleRequest struct {
	Amount            string
	OrderID           string
	MerchantAccountID string
	Options           map[string]string
	CreditCard        *CreditCard
	Customer          *Customer
	Billing           *Address
	Shipping          *Address
}

// HistoryEntry records a single status change.
type HistoryEntry struct {
	Timestamp time.Time
	From      string
	To        string
	Action    string
}

// Transaction is one charge attempt. Status and type only change through
// Authorize and SubmitForSettlement. The request attributes are immutable;
// mu guards everything a status change writes.
type Transaction struct {
	id    string
	attrs SaleRequest

	mu        sync.Mutex
	status    string
	txnType   string
	history   []HistoryEntry
	createdAt time.Time
	updatedAt time.Time
}

// NewTransaction creates a transaction in the authorizing state.
func NewTransaction(id string, req SaleRequest) *Transaction {
	now := time.Now()
	return &Transaction{
		id:        id,
		attrs:     req,
		status:    StatusAuthorizing,
		history:   make([]HistoryEntry, 0, 2),
		createdAt: now,
		updatedAt: now,
	}
}

func (t *Transaction) ID() string                { return t.id }
func (t *Transaction) Amount() string            { return t.attrs.Amount }
func (t *Transaction) OrderID() string           { return t.attrs.OrderID }
func (t *Transaction) MerchantAccountID() string { return t.attrs.MerchantAccountID }
func (t *Transaction) CreatedAt() time.Time      { return t.createdAt }

func (t *Transaction) Status() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *Transaction) Type() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.txnType
}

func (t *Transaction) UpdatedAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.updatedAt
}

// Options returns a copy of the request options.
func (t *Transaction) Options() map[string]string {
	out := make(map[string]string, len(t.attrs.Options))
	for k, v := range t.attrs.Options {
		out[k] = v
	}
	return out
}

func (t *Transaction) CreditCard() *CreditCard { return t.attrs.CreditCard }
func (t *Transaction) Customer() *Customer     { return t.attrs.Customer }
func (t *Transaction) Billing() *Address       { return t.attrs.Billing }
func (t *Transaction) Shipping() *Address      { return t.attrs.Shipping }

// CreditCardDetails is an alias of CreditCard kept for client-library parity.
func (t *Transaction) CreditCardDetails() *CreditCard { return t.attrs.CreditCard }

// BillingDetails is an alias of Billing.
func (t *Transaction) BillingDetails() *Address { return t.attrs.Billing }

// ShippingDetails is an alias of Shipping.
func (t *Transaction) ShippingDetails() *Address { return t.attrs.Shipping }

// History returns a copy of the status history.
func (t *Transaction) History() []HistoryEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]HistoryEntry, len(t.history))
	copy(out, t.history)
	return out
}

// Errors runs the validation rules against the transaction's attributes.
func (t *Transaction) Errors() *Errors {
	return Validate(t.attrs)
}

// ProcessorResponseCode is the simulated processor decision for the amount.
func (t *Transaction) ProcessorResponseCode() string {
	return ProcessorResponseCode(t.attrs.Amount)
}

// ProcessorResponseText is the human-readable reason for the processor code.
func (t *Transaction) ProcessorResponseText() string {
	return ProcessorResponseText(t.ProcessorResponseCode())
}

// ProcessorAuthorizationCode is the fake authorization code of every sale.
func (t *Transaction) ProcessorAuthorizationCode() string {
	return ProcessorAuthorizationCode
}

func (t *Transaction) AVSErrorResponseCode() string {
	return AVSErrorResponseCode(t.billingPostalCode())
}

func (t *Transaction) AVSPostalCodeResponseCode() string {
	return AVSPostalCodeResponseCode(t.billingPostalCode())
}

func (t *Transaction) AVSStreetAddressResponseCode() string {
	var street string
	if t.attrs.Billing != nil {
		street = t.attrs.Billing.StreetAddress
	}
	return AVSStreetAddressResponseCode(street)
}

func (t *Transaction) CVVResponseCode() string {
	var cvv string
	if t.attrs.CreditCard != nil {
		cvv = t.attrs.CreditCard.CVV
	}
	return CVVResponseCode(cvv)
}

func (t *Transaction) billingPostalCode() string {
	if t.attrs.Billing == nil {
		return ""
	}
	return t.attrs.Billing.PostalCode
}

// Authorize decides the outcome of a validated sale from its processor
// response code and records it as a sale.
func (t *Transaction) Authorize() error {
	target := StatusProcessorDeclined
	if IsApprovalCode(t.ProcessorResponseCode()) {
		target = StatusAuthorized
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.transitionTo(target, "SALE"); err != nil {
		return err
	}
	t.txnType = TypeSale
	return nil
}

// SubmitForSettlement moves an authorized transaction to
// submitted_for_settlement. Any other status is a usage fault.
func (t *Transaction) SubmitForSettlement() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != StatusAuthorized {
		return NewNotAuthorizedError(t.id, t.status)
	}
	return t.transitionTo(StatusSubmittedForSettlement, "SUBMIT_FOR_SETTLEMENT")
}

// MustSubmitForSettlement is like SubmitForSettlement but panics on misuse.
func (t *Transaction) MustSubmitForSettlement() {
	if err := t.SubmitForSettlement(); err != nil {
		panic(err)
	}
}

// transitionTo must be called with t.mu held.
func (t *Transaction) transitionTo(newStatus, action string) error {
	if err := ValidateTransition(t.status, newStatus); err != nil {
		return err
	}
	old := t.status
	t.status = newStatus
	t.updatedAt = time.Now()
	t.history = append(t.history, HistoryEntry{
		Timestamp: t.updatedAt,
		From:      old,
		To:        newStatus,
		Action:    action,
	})
	return nil
}
