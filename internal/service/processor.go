// Package service provides command processing for the gateway simulator CLI.
package service

import (
	"fmt"
	"strings"

	"gateway-sim/internal/domain"
	"gateway-sim/internal/gateway"
	"gateway-sim/internal/parser"
	"gateway-sim/internal/redirect"
)

// BlankAmount is the CLI spelling of a missing amount.
const BlankAmount = "-"

// Kind classifies the business outcome of a command.
type Kind int

const (
	// KindOK is a command that did what was asked.
	KindOK Kind = iota
	// KindInvalid is a sale rejected by validation.
	KindInvalid
	// KindDeclined is a sale the processor declined.
	KindDeclined
)

// Outcome is what a command produced. Usage faults and I/O failures are
// returned as errors instead.
type Outcome struct {
	Kind Kind
	Text string
}

func ok(format string, a ...any) Outcome {
	return Outcome{Kind: KindOK, Text: fmt.Sprintf(format, a...)}
}

// Processor handles command execution.
type Processor struct {
	gateway   *gateway.Gateway
	redirects *redirect.Registry
}

// NewProcessor creates a new command processor.
func NewProcessor(gw *gateway.Gateway, redirects *redirect.Registry) *Processor {
	return &Processor{
		gateway:   gw,
		redirects: redirects,
	}
}

// Execute processes a parsed command and returns its outcome.
func (p *Processor) Execute(cmd *parser.Command) (Outcome, error) {
	switch cmd.Name {
	case "SALE":
		return p.handleSale(cmd)
	case "SETTLE":
		return p.handleSettle(cmd.Args[0])
	case "FIND":
		return p.handleFind(cmd.Args[0])
	case "LIST":
		return p.handleList()
	case "REDIRECT":
		return p.handleRedirect(cmd)
	case "CONFIRM":
		return p.handleConfirm(cmd.Args[0])
	case "RESET":
		txns, redirects := p.gateway.Len(), p.redirects.Len()
		p.gateway.Reset()
		p.redirects.Reset()
		return ok("Registry reset: %d transactions, %d redirects dropped", txns, redirects), nil
	case "EXIT":
		// This should be handled by the runner, not here
		return Outcome{}, nil
	default:
		return Outcome{}, fmt.Errorf("unknown command: %s", cmd.Name)
	}
}

// handleSale handles the SALE command.
func (p *Processor) handleSale(cmd *parser.Command) (Outcome, error) {
	req, err := BuildSaleRequest(cmd.Args[0], cmd.Fields)
	if err != nil {
		return Outcome{}, err
	}
	result, err := p.gateway.Sale(req)
	if err != nil {
		return Outcome{}, err
	}
	return classify(result), nil
}

// handleSettle handles the SETTLE command.
func (p *Processor) handleSettle(id string) (Outcome, error) {
	if err := p.gateway.SubmitForSettlement(id); err != nil {
		return Outcome{}, err
	}
	return ok("Transaction %s submitted for settlement", id), nil
}

// handleFind handles the FIND command.
func (p *Processor) handleFind(id string) (Outcome, error) {
	txn, err := p.gateway.Find(id)
	if err != nil {
		return Outcome{}, err
	}
	return ok("%s", formatTransaction(txn)), nil
}

// handleList handles the LIST command.
func (p *Processor) handleList() (Outcome, error) {
	txns, err := p.gateway.List()
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to list transactions: %w", err)
	}

	if len(txns) == 0 {
		return ok("No transactions found"), nil
	}

	var sb strings.Builder
	sb.WriteString("Transactions:\n")
	for _, txn := range txns {
		sb.WriteString(fmt.Sprintf("  %s: status=%s amount=%s\n", txn.ID(), txn.Status(), txn.Amount()))
	}
	return ok("%s", strings.TrimSuffix(sb.String(), "\n")), nil
}

// handleRedirect registers a deferred sale and prints its token.
func (p *Processor) handleRedirect(cmd *parser.Command) (Outcome, error) {
	req, err := BuildSaleRequest(cmd.Args[0], cmd.Fields)
	if err != nil {
		return Outcome{}, err
	}

	token := p.redirects.Register(func() (domain.Result, error) {
		return p.gateway.Sale(req)
	})
	return ok("Redirect registered: token=%s url=%s", token, p.gateway.TransactionURL()), nil
}

// handleConfirm runs the sale registered under a redirect token.
func (p *Processor) handleConfirm(token string) (Outcome, error) {
	result, err := p.redirects.Invoke(token)
	if err != nil {
		return Outcome{}, err
	}
	if result == nil {
		return Outcome{}, fmt.Errorf("redirect %s produced no result", token)
	}
	return classify(result), nil
}

func classify(result domain.Result) Outcome {
	if errs := result.Errors(); errs.Size() > 0 {
		return Outcome{Kind: KindInvalid, Text: strings.Join(errs.Messages(), "; ")}
	}
	txn := result.Transaction()
	text := fmt.Sprintf("Transaction %s %s: processor_response=%s (%s)",
		txn.ID(), txn.Status(), txn.ProcessorResponseCode(), txn.ProcessorResponseText())
	if !result.Success() {
		return Outcome{Kind: KindDeclined, Text: text}
	}
	return Outcome{Kind: KindOK, Text: text}
}

func formatTransaction(txn *domain.Transaction) string {
	s := fmt.Sprintf("Transaction %s: status=%s type=%s amount=%s processor_response=%s auth_code=%s avs_error=%s avs_postal=%s avs_street=%s cvv=%s",
		txn.ID(), txn.Status(), txn.Type(), txn.Amount(),
		txn.ProcessorResponseCode(), txn.ProcessorAuthorizationCode(),
		txn.AVSErrorResponseCode(), txn.AVSPostalCodeResponseCode(),
		txn.AVSStreetAddressResponseCode(), txn.CVVResponseCode())
	if card := txn.CreditCard(); card != nil {
		s += fmt.Sprintf(" bin=%s last4=%s", card.Bin(), card.Last4())
	}
	return s
}
