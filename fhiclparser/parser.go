// Recursive descent parser for FHiCL documents. Alternatives are committed:
// once a production has committed to a value type (`{`, `[`, `(`), a
// subsequent mismatch is fatal for the whole parse, there is no backtracking.
package fhiclparser

import "strings"

type parser struct {
	s *Scanner
}

// ParseDocument parses a document: zero or more associations. The prolog
// and the body are both parsed with this single entry point; prolog framing
// happens textually before the grammar runs.
func ParseDocument(s *Scanner) ([]AssocNode, error) {
	// CONVENTION:
	// All functions expect `s` positioned on the first token they are
	// documented to consume, and leave `s` positioned on the first
	// non-whitespace token after what they consumed.
	p := &parser{s: s}
	s.NextNonWhitespaceToken()
	items, err := p.parseTableItems(EOFToken)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// parseTableItems parses associations until `terminator` (EOFToken for the
// document level, RightBraceToken inside a table). The terminator itself is
// consumed.
func (p *parser) parseTableItems(terminator TokenType) ([]AssocNode, error) {
	var items []AssocNode
	s := p.s
	for {
		switch s.TokenType() {
		case terminator:
			s.NextNonWhitespaceToken()
			return items, nil
		case EOFToken:
			return nil, errorAt(ParseFailure, s, "unexpected end of input, missing `}`")
		case IdentifierToken, HnameToken:
			item, err := p.parseAssociation()
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		case NumberToken:
			return nil, errorAt(InvalidToken, s, "name may not begin with a digit: %q", s.Token()+p.adjacentIdentifier())
		default:
			return nil, p.unexpected("name")
		}
	}
}

// parseAssociation parses `id : value`, positioned on the id token.
func (p *parser) parseAssociation() (AssocNode, error) {
	s := p.s
	key := CreateUnparsed(s)
	if s.NextNonWhitespaceToken() != ColonToken {
		return AssocNode{}, errorf(ParseFailure, key.Start, "expected `:` after %q", key.RawValue)
	}
	s.NextNonWhitespaceToken()
	value, err := p.parseValue(key)
	if err != nil {
		return AssocNode{}, err
	}
	return AssocNode{Key: key, Value: value}, nil
}

// parseValue parses a value: atom, sequence or table. `key` is only used
// for the InvalidAssociation message when no value follows the colon.
func (p *parser) parseValue(key Unparsed) (Node, error) {
	s := p.s
	switch s.TokenType() {
	case QuotedStringToken, ReferenceToken:
		atom := AtomNode{Token: CreateUnparsed(s)}
		s.NextNonWhitespaceToken()
		return atom, nil
	case NumberToken:
		atom := AtomNode{Token: CreateUnparsed(s)}
		if id := p.adjacentIdentifier(); id != "" {
			return nil, errorf(InvalidToken, atom.Token.Start, "malformed numeric token: %q", atom.Token.RawValue+id)
		}
		s.NextNonWhitespaceToken()
		return atom, nil
	case IdentifierToken:
		return p.parseUnquotedAtom()
	case LeftBraceToken:
		open := s.Start()
		s.NextNonWhitespaceToken()
		items, err := p.parseTableItems(RightBraceToken)
		if err != nil {
			return nil, err
		}
		return TableNode{Open: open, Items: items}, nil
	case LeftBracketToken:
		return p.parseSeq()
	case LeftParenToken:
		return p.parseComplex()
	case HnameToken:
		return nil, errorAt(InvalidToken, s, "hierarchical name %q is not a value", s.Token())
	case UnterminatedStringErrorToken:
		return nil, errorAt(InvalidToken, s, "unterminated string literal")
	case MalformedReferenceErrorToken:
		return nil, errorAt(InvalidToken, s, "malformed reference, expected @local:: or @db::")
	case NonUTF8ErrorToken:
		return nil, errorAt(ParseFailure, s, "input is not valid UTF-8")
	default:
		return nil, errorf(InvalidAssociation, key.Start, "no value after %q:", key.RawValue)
	}
}

// parseUnquotedAtom handles an identifier in value position: True, False,
// nil, infinity, or an unquoted string. The legacy trailing-garbage check
// applies: if the rest of the line, with any comment stripped, is non-empty
// and contains none of `:`, `.`, `[`, `]`, `,`, `}`, the identifier was a
// malformed bare token.
func (p *parser) parseUnquotedAtom() (Node, error) {
	s := p.s
	atom := AtomNode{Token: CreateUnparsed(s)}
	rest := s.RestOfLine()
	// comments don't count as trailing garbage
	if i := strings.IndexByte(rest, '#'); i != -1 {
		rest = rest[:i]
	}
	if i := strings.Index(rest, "//"); i != -1 {
		rest = rest[:i]
	}
	// `:`/`.`/`[` mean another association or segment follows; `]`, `,`, `}`
	// mean we are inside an enclosing sequence or table
	if strings.TrimSpace(rest) != "" && !strings.ContainsAny(rest, ":.[],}") {
		return nil, errorf(InvalidToken, atom.Token.Start, "malformed unquoted token: %q", atom.Token.RawValue+rest)
	}
	s.NextNonWhitespaceToken()
	return atom, nil
}

// parseSeq parses `[ (value or ,)* ]`, positioned on the `[`. Commas are
// optional separators and empty slots are simply skipped.
func (p *parser) parseSeq() (Node, error) {
	s := p.s
	node := SeqNode{Open: s.Start()}
	s.NextNonWhitespaceToken()
	for {
		switch s.TokenType() {
		case RightBracketToken:
			s.NextNonWhitespaceToken()
			return node, nil
		case CommaToken:
			s.NextNonWhitespaceToken()
		case EOFToken:
			return nil, errorf(ParseFailure, node.Open, "unterminated sequence, missing `]`")
		default:
			elem, err := p.parseValue(Unparsed{Start: s.Start()})
			if err != nil {
				return nil, err
			}
			node.Elems = append(node.Elems, elem)
		}
	}
}

// parseComplex parses `( simple , simple )`, positioned on the `(`.
func (p *parser) parseComplex() (Node, error) {
	s := p.s
	node := ComplexNode{Open: s.Start()}
	if s.NextNonWhitespaceToken() != NumberToken {
		return nil, errorf(ParseFailure, node.Open, "expected number as real part of complex literal")
	}
	node.Real = CreateUnparsed(s)
	if s.NextNonWhitespaceToken() != CommaToken {
		return nil, errorf(ParseFailure, node.Open, "expected `,` in complex literal")
	}
	if s.NextNonWhitespaceToken() != NumberToken {
		return nil, errorf(ParseFailure, node.Open, "expected number as imaginary part of complex literal")
	}
	node.Imag = CreateUnparsed(s)
	if s.NextNonWhitespaceToken() != RightParenToken {
		return nil, errorf(ParseFailure, node.Open, "expected `)` after complex literal")
	}
	s.NextNonWhitespaceToken()
	return node, nil
}

// adjacentIdentifier reports identifier text glued directly onto the current
// (number) token, e.g. the `abc` of `1abc`. Empty string if the next token
// is not an identifier or does not touch this one.
func (p *parser) adjacentIdentifier() string {
	stop := p.s.Stop()
	clone := p.s.Clone()
	switch clone.NextToken() {
	case IdentifierToken, HnameToken:
		if clone.Start() == stop {
			return clone.Token()
		}
	}
	return ""
}

func (p *parser) unexpected(expected string) *Error {
	s := p.s
	switch s.TokenType() {
	case UnterminatedStringErrorToken:
		return errorAt(InvalidToken, s, "unterminated string literal")
	case MalformedReferenceErrorToken:
		return errorAt(InvalidToken, s, "malformed reference, expected @local:: or @db::")
	case NonUTF8ErrorToken:
		return errorAt(ParseFailure, s, "input is not valid UTF-8")
	case UnexpectedCharacterToken:
		return errorAt(InvalidToken, s, "unexpected character %q", s.Token())
	default:
		return errorAt(ParseFailure, s, "expected %s, got %q", expected, s.Token())
	}
}
