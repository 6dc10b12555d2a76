// Package parser turns gateway-sim script lines into commands.
//
// A line is a command name, its positional arguments and, for commands that
// carry transaction attributes, a list of key=value fields:
//
//	SALE 10.00 card.number=4111111111111111 billing.street_address=1+Main+St # note
//
// A '#' token starts a comment, but only once every positional argument has
// been read.
package parser

import (
	"fmt"
	"net/url"
	"strings"
)

// Command is a parsed script line.
type Command struct {
	Name   string
	Args   []string
	Fields []Field
}

// Field is one key=value attribute. Value is query-unescaped.
type Field struct {
	Key   string
	Value string
}

type commandSpec struct {
	args   int
	fields bool
}

var commands = map[string]commandSpec{
	"SALE":     {args: 1, fields: true}, // <amount> [key=value ...]
	"REDIRECT": {args: 1, fields: true}, // <amount> [key=value ...]
	"SETTLE":   {args: 1},               // <txn_id>
	"FIND":     {args: 1},               // <txn_id>
	"CONFIRM":  {args: 1},               // <token>
	"LIST":     {},
	"RESET":    {},
	"EXIT":     {},
}

// Parse parses one script line.
func Parse(line string) (*Command, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty input")
	}

	name := tokens[0]
	spec, known := commands[name]
	if !known {
		return nil, fmt.Errorf("unknown command: %s", name)
	}

	cmd := &Command{Name: name, Args: make([]string, 0, spec.args)}
	for _, token := range tokens[1:] {
		if len(cmd.Args) < spec.args {
			if strings.HasPrefix(token, "#") {
				return nil, fmt.Errorf("malformed input: unexpected '#' in required argument position for %s", name)
			}
			cmd.Args = append(cmd.Args, token)
			continue
		}
		if strings.HasPrefix(token, "#") {
			break
		}
		if !spec.fields {
			return nil, fmt.Errorf("unexpected argument %q for %s", token, name)
		}
		field, err := parseField(token)
		if err != nil {
			return nil, err
		}
		cmd.Fields = append(cmd.Fields, field)
	}

	if len(cmd.Args) < spec.args {
		return nil, fmt.Errorf("insufficient arguments for %s: expected %d, got %d", name, spec.args, len(cmd.Args))
	}
	return cmd, nil
}

func parseField(token string) (Field, error) {
	key, raw, ok := strings.Cut(token, "=")
	if !ok || key == "" {
		return Field{}, fmt.Errorf("malformed field %q: expected key=value", token)
	}
	value, err := url.QueryUnescape(raw)
	if err != nil {
		return Field{}, fmt.Errorf("malformed field %q: %w", token, err)
	}
	return Field{Key: key, Value: value}, nil
}
