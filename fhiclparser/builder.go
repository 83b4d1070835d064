package fhiclparser

import (
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

// The tree builder walks the AST in source order and produces the resolved
// parameter table. References and hname overrides are applied per binding,
// against the partial tree as it is being built, so a reference sees
// everything bound before it in its own table frame, plus the prolog.
// Bindings of enclosing frames are not visible to nested tables.

type builder struct {
	prolog *Table
	log    logrus.FieldLogger
}

// Build parses and builds one framed document region (the prolog and the
// body each go through here once). prolog may be nil for the prolog's own
// build.
func Build(file FileRef, input string, prolog *Table, log logrus.FieldLogger) (*Table, error) {
	items, err := ParseDocument(NewScanner(file, input))
	if err != nil {
		return nil, err
	}
	return BuildDocument(items, prolog, log)
}

// BuildDocument turns a parsed association list into a resolved Table.
func BuildDocument(items []AssocNode, prolog *Table, log logrus.FieldLogger) (*Table, error) {
	if prolog == nil {
		prolog = NewTable()
	}
	if log == nil {
		log = discardLogger()
	}
	doc := NewTable()
	b := &builder{prolog: prolog, log: log}
	if err := b.buildTableInto(items, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// buildTableInto binds each association into current. Each table frame gets
// its own resolution scope D (the frame's table in progress, with P passed
// down unchanged) and its own deletion list for applied hname keys, drained
// before returning and never shared with nested frames.
func (b *builder) buildTableInto(items []AssocNode, current *Table) error {
	res := &resolver{doc: current, prolog: b.prolog, log: b.log}
	var deletions []string
	for _, item := range items {
		if err := checkKey(item.Key); err != nil {
			return err
		}
		key := item.Key.RawValue
		v, err := b.buildValue(item.Value)
		if err != nil {
			return err
		}
		v, err = res.resolveValue(v, item.Key.Start)
		if err != nil {
			return err
		}
		if item.Key.Type == HnameToken {
			res.applyOverride(key, item.Key.Start, v)
			deletions = append(deletions, key)
		}
		current.Set(key, v)
	}
	for _, k := range deletions {
		current.Delete(k)
	}
	return nil
}

func (b *builder) buildValue(node Node) (Value, error) {
	switch n := node.(type) {
	case AtomNode:
		return b.buildAtom(n)
	case ComplexNode:
		re, err := classifySimple(n.Real)
		if err != nil {
			return Value{}, err
		}
		im, err := classifySimple(n.Imag)
		if err != nil {
			return Value{}, err
		}
		return ComplexValue(re, im), nil
	case SeqNode:
		elems := make([]Value, 0, len(n.Elems))
		for _, e := range n.Elems {
			v, err := b.buildValue(e)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, v)
		}
		return SeqValue(elems), nil
	case TableNode:
		nested := NewTable()
		if err := b.buildTableInto(n.Items, nested); err != nil {
			return Value{}, err
		}
		return TableValue(nested), nil
	default:
		return Value{}, errorf(ParseFailure, node.Pos(), "unhandled syntax node")
	}
}

func (b *builder) buildAtom(n AtomNode) (Value, error) {
	tok := n.Token
	switch tok.Type {
	case QuotedStringToken:
		return StringValue(unquote(tok.RawValue)), nil
	case NumberToken:
		return classifyNumber(tok)
	case ReferenceToken:
		return refFromToken(tok)
	case IdentifierToken:
		switch tok.RawValue {
		case "True":
			return BoolValue(true), nil
		case "False":
			return BoolValue(false), nil
		case "nil":
			return NilValue(), nil
		case "infinity":
			return InfinityValue(""), nil
		default:
			return StringValue(tok.RawValue), nil
		}
	default:
		return Value{}, errorf(ParseFailure, tok.Start, "unhandled atom token %s", tok.Type)
	}
}

func refFromToken(tok Unparsed) (Value, error) {
	switch {
	case strings.HasPrefix(tok.RawValue, "@"+localRefPrefix):
		return RefValue(LocalRef, tok.RawValue[1+len(localRefPrefix):]), nil
	case strings.HasPrefix(tok.RawValue, "@"+dbRefPrefix):
		return RefValue(DbRef, tok.RawValue[1+len(dbRefPrefix):]), nil
	default:
		return Value{}, errorf(InvalidToken, tok.Start, "malformed reference: %q", tok.RawValue)
	}
}

// checkKey validates the leading name of a binding: first character must be
// alphabetic or underscore.
func checkKey(tok Unparsed) error {
	r, _ := utf8.DecodeRuneInString(tok.RawValue)
	if !(unicode.IsLetter(r) || r == '_') {
		return errorf(InvalidToken, tok.Start, "name may not begin with %q: %q", r, tok.RawValue)
	}
	return nil
}

// unquote strips the surrounding quote pair and unescapes the quote and
// backslash escapes in the body.
func unquote(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	quote := raw[0]
	body := raw[1 : len(raw)-1]
	body = strings.ReplaceAll(body, `\`+string(quote), string(quote))
	body = strings.ReplaceAll(body, `\\`, `\`)
	return body
}

func discardLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
