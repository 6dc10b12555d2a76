// Package app provides the application runner for the gateway simulator CLI.
package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"gateway-sim/internal/domain"
	"gateway-sim/internal/parser"
	"gateway-sim/internal/service"
)

// Output line prefixes. Business outcomes (INVALID, DECLINED) are ordinary
// gateway answers; FAULT marks a misuse of the gateway API and ERROR a line
// that could not be run at all.
const (
	prefixInvalid  = "INVALID"
	prefixDeclined = "DECLINED"
	prefixFault    = "FAULT"
	prefixError    = "ERROR"
)

// Runner handles the main read-parse-execute-output loop.
type Runner struct {
	processor *service.Processor
	reader    *bufio.Scanner
	writer    io.Writer
}

// NewRunner creates a new application runner.
func NewRunner(processor *service.Processor, input io.Reader, output io.Writer) *Runner {
	return &Runner{
		processor: processor,
		reader:    bufio.NewScanner(input),
		writer:    output,
	}
}

// Run executes the main loop until EXIT is received or EOF is reached.
func (r *Runner) Run() error {
	for r.reader.Scan() {
		line := strings.TrimSpace(r.reader.Text())
		if line == "" {
			continue
		}

		cmd, err := parser.Parse(line)
		if err != nil {
			r.writeLine(prefixError, err.Error())
			continue
		}
		if cmd.Name == "EXIT" {
			return nil
		}

		out, err := r.processor.Execute(cmd)
		if err != nil {
			r.reportError(err)
			continue
		}
		r.report(out)
	}

	if err := r.reader.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	return nil
}

func (r *Runner) report(out service.Outcome) {
	switch out.Kind {
	case service.KindInvalid:
		r.writeLine(prefixInvalid, out.Text)
	case service.KindDeclined:
		r.writeLine(prefixDeclined, out.Text)
	default:
		if out.Text != "" {
			fmt.Fprintln(r.writer, out.Text)
		}
	}
}

func (r *Runner) reportError(err error) {
	if isFault(err) {
		r.writeLine(prefixFault, err.Error())
		return
	}
	r.writeLine(prefixError, err.Error())
}

func (r *Runner) writeLine(prefix, text string) {
	fmt.Fprintf(r.writer, "%s %s\n", prefix, text)
}

// isFault reports whether err is a gateway usage fault: settling a
// transaction that is not authorized, an illegal status change, or a lookup
// of an id or redirect token that was never issued.
func isFault(err error) bool {
	var notAuthorized *domain.NotAuthorizedError
	var invalidTransition *domain.InvalidTransitionError
	return errors.As(err, &notAuthorized) ||
		errors.As(err, &invalidTransition) ||
		errors.Is(err, domain.ErrTransactionNotFound) ||
		errors.Is(err, domain.ErrUnknownRedirectToken)
}
