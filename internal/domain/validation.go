package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Validation messages reported by the gateway.
const (
	MsgAmountRequired      = "Amount is required"
	MsgAmountInvalidFormat = "Amount is an invalid format"
	MsgAmountNegative      = "Amount cannot be negative"
	MsgAmountTooLarge      = "Amount is too large"
	MsgOrderIDTooLong      = "Order id is too long"
	MsgBillingWithoutCard  = "Cannot provide a billing address unless also providing a credit card"
	MsgPaymentMethodNeeded = "Need a customer_id, payment_method_token, credit_card, or subscription_id."
)

// MaxOrderIDLength is the longest order id the gateway accepts, in characters.
const MaxOrderIDLength = 255

var (
	// A single trailing newline is tolerated, as an end-of-string anchor
	// that also matches before a final newline would.
	amountPattern = regexp.MustCompile(`^-?\d+(\.\d\d)?\n?$`)
	maxAmount     = decimal.RequireFromString("9999999.99")
)

// ValidationError is a single message reported for a rejected sale.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// Errors is an ordered collection of validation errors.
type Errors struct {
	errors []ValidationError
}

// NewErrors returns an empty collection.
func NewErrors() *Errors {
	return &Errors{errors: make([]ValidationError, 0)}
}

// AddUnlessBlank appends message unless it is blank.
func (e *Errors) AddUnlessBlank(message string) {
	if strings.TrimSpace(message) == "" {
		return
	}
	e.errors = append(e.errors, ValidationError{Message: message})
}

// Size returns the number of errors.
func (e *Errors) Size() int {
	if e == nil {
		return 0
	}
	return len(e.errors)
}

// All returns a copy of the errors in insertion order.
func (e *Errors) All() []ValidationError {
	if e == nil {
		return nil
	}
	out := make([]ValidationError, len(e.errors))
	copy(out, e.errors)
	return out
}

// Messages returns the error messages in insertion order.
func (e *Errors) Messages() []string {
	if e == nil {
		return nil
	}
	out := make([]string, len(e.errors))
	for i, err := range e.errors {
		out[i] = err.Message
	}
	return out
}

// Validate returns every validation error for a proposed sale. An empty
// collection means the sale may be authorized.
func Validate(req SaleRequest) *Errors {
	errs := NewErrors()

	// Only the first failing amount check is reported.
	errs.AddUnlessBlank(amountError(req.Amount))

	if utf8.RuneCountInString(req.OrderID) > MaxOrderIDLength {
		errs.AddUnlessBlank(MsgOrderIDTooLong)
	}

	if req.Billing != nil && req.CreditCard == nil {
		errs.AddUnlessBlank(MsgBillingWithoutCard)
	}

	if req.CreditCard == nil {
		errs.AddUnlessBlank(MsgPaymentMethodNeeded)
	}

	return errs
}

func amountError(amount string) string {
	if strings.TrimSpace(amount) == "" {
		return MsgAmountRequired
	}
	if !amountPattern.MatchString(amount) {
		return MsgAmountInvalidFormat
	}
	value, err := decimal.NewFromString(strings.TrimSuffix(amount, "\n"))
	if err != nil {
		return MsgAmountInvalidFormat
	}
	switch {
	case value.IsNegative():
		return MsgAmountNegative
	case value.GreaterThan(maxAmount):
		return MsgAmountTooLarge
	}
	return ""
}
