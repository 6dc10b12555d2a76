package domain

// Result is the outcome of a sale: either a SuccessResult or an ErrorResult.
type Result interface {
	Success() bool
	Errors() *Errors
	Transaction() *Transaction
}

// SuccessResult is returned for an authorized sale.
type SuccessResult struct {
	transaction *Transaction
}

// NewSuccessResult wraps an authorized transaction.
func NewSuccessResult(t *Transaction) *SuccessResult {
	return &SuccessResult{transaction: t}
}

func (r *SuccessResult) Success() bool             { return true }
func (r *SuccessResult) Errors() *Errors           { return NewErrors() }
func (r *SuccessResult) Transaction() *Transaction { return r.transaction }

// ErrorResult is returned for a rejected or declined sale. Validation
// failures carry errors and no transaction; processor declines carry an
// empty error list and the declined transaction.
type ErrorResult struct {
	errors      *Errors
	transaction *Transaction
}

// NewErrorResult builds an ErrorResult. t may be nil.
func NewErrorResult(errs *Errors, t *Transaction) *ErrorResult {
	if errs == nil {
		errs = NewErrors()
	}
	return &ErrorResult{errors: errs, transaction: t}
}

func (r *ErrorResult) Success() bool             { return false }
func (r *ErrorResult) Errors() *Errors           { return r.errors }
func (r *ErrorResult) Transaction() *Transaction { return r.transaction }
