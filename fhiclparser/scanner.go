package fhiclparser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/smasher164/xid"
)

// dedicated type for reference to file, in case we need to refactor this later..
type FileRef string

type Pos struct {
	File      FileRef
	Line, Col int
}

// We don't do the lexer/parser split / token stream, but simply use the
// Scanner directly from the recursive descent parser; it is simply a cursor
// in the buffer with associated utility methods
type Scanner struct {
	input string
	file  FileRef

	startIndex int // start of this item
	curIndex   int // current position of the Scanner
	tokenType  TokenType

	startLine        int
	stopLine         int
	indexAtStartLine int // value of `curIndex` after newline char
	indexAtStopLine  int // value of `curIndex` after newline char
}

type TokenType int

func NewScanner(file FileRef, input string) *Scanner {
	return &Scanner{input: input, file: file}
}

func (s *Scanner) TokenType() TokenType {
	return s.tokenType
}

// Returns a clone of the scanner; this is used to do look-ahead parsing
func (s Scanner) Clone() *Scanner {
	result := new(Scanner)
	*result = s
	return result
}

func (s *Scanner) Token() string {
	return s.input[s.startIndex:s.curIndex]
}

func (s *Scanner) Start() Pos {
	return Pos{
		Line: s.startLine + 1,
		Col:  s.startIndex - s.indexAtStartLine + 1,
		File: s.file,
	}
}

func (s *Scanner) Stop() Pos {
	return Pos{
		Line: s.stopLine + 1,
		Col:  s.curIndex - s.indexAtStopLine + 1,
		File: s.file,
	}
}

// RestOfLine returns the raw input from the current position to the next
// newline (or end of input), without advancing the Scanner. Used for the
// trailing-garbage check after an unquoted string.
func (s *Scanner) RestOfLine() string {
	rest := s.input[s.curIndex:]
	if i := strings.IndexByte(rest, '\n'); i != -1 {
		rest = rest[:i]
	}
	return rest
}

// CurrentLine returns the full text of the line the current token starts on.
func (s *Scanner) CurrentLine() string {
	start := s.indexAtStartLine
	end := len(s.input)
	if i := strings.IndexByte(s.input[start:], '\n'); i != -1 {
		end = start + i
	}
	return s.input[start:end]
}

func (s *Scanner) bumpLine(offset int) {
	s.stopLine++
	s.indexAtStopLine = s.curIndex + offset + 1
}

func (s *Scanner) SkipWhitespace() {
	for {
		switch s.TokenType() {
		case WhitespaceToken, CommentToken:
		default:
			return
		}
		s.NextToken()
	}
}

func (s *Scanner) NextNonWhitespaceToken() TokenType {
	s.NextToken()
	s.SkipWhitespace()
	return s.TokenType()
}

// NextToken scans the next token and advances the Scanner's position to
// after the token
func (s *Scanner) NextToken() TokenType {
	s.tokenType = s.nextToken()
	return s.tokenType
}

func (s *Scanner) nextToken() TokenType {
	s.startIndex = s.curIndex
	s.startLine = s.stopLine
	s.indexAtStartLine = s.indexAtStopLine
	r, w := utf8.DecodeRuneInString(s.input[s.curIndex:])

	// First, decisions that can be made after one character:
	switch {
	case r == utf8.RuneError && w == 0:
		return EOFToken
	case r == utf8.RuneError && w == 1:
		// not UTF-8, we can't really proceed so not advancing Scanner,
		// caller should take care to always exit..
		return NonUTF8ErrorToken
	case r == '{':
		s.curIndex += w
		return LeftBraceToken
	case r == '}':
		s.curIndex += w
		return RightBraceToken
	case r == '[':
		s.curIndex += w
		return LeftBracketToken
	case r == ']':
		s.curIndex += w
		return RightBracketToken
	case r == '(':
		s.curIndex += w
		return LeftParenToken
	case r == ')':
		s.curIndex += w
		return RightParenToken
	case r == ':':
		s.curIndex += w
		return ColonToken
	case r == ',':
		s.curIndex += w
		return CommaToken
	case r == '\'' || r == '"':
		s.curIndex += w
		return s.scanStringLiteral(r)
	case r == '#':
		// `#include` never reaches the scanner; any other # is a comment
		s.curIndex += w
		return s.scanComment()
	case r == '@':
		s.curIndex += w
		return s.scanReference()
	case r >= '0' && r <= '9':
		return s.scanNumber()
	case unicode.IsSpace(r):
		// do not advance s.curIndex here, simpler to do it all in
		// scanWhitespace(); in case r == '\n' we need the line number bump
		return s.scanWhitespace()
	case xid.Start(r) || r == '_':
		s.curIndex += w
		return s.scanIdentifierOrHname()
	}

	// OK, we need to peek 1 character to make a decision
	r2, _ := utf8.DecodeRuneInString(s.input[s.curIndex+w:])

	switch {
	case r == '/' && r2 == '/':
		s.curIndex += w
		s.curIndex += utf8.RuneLen(r2)
		return s.scanComment()
	case (r == '-' || r == '+') && (r2 >= '0' && r2 <= '9' || r2 == '.'):
		return s.scanNumber()
	case (r == '-' || r == '+') && (xid.Start(r2) || r2 == '_'):
		// signed infinity; scanned as a number-shaped atom
		s.curIndex += w
		s.scanIdentifier()
		return NumberToken
	}

	s.curIndex += w
	return UnexpectedCharacterToken
}

// scanComment assumes one has advanced over `#` or `//`
func (s *Scanner) scanComment() TokenType {
	end := strings.IndexByte(s.input[s.curIndex:], '\n')
	if end == -1 {
		// end of file also ends the comment
		s.curIndex = len(s.input)
	} else {
		// the \n is simpler to treat as whitespace than as part of the token
		s.curIndex += end
	}
	return CommentToken
}

// scanStringLiteral assumes one has advanced over the opening quote; scans
// until the matching unescaped quote
func (s *Scanner) scanStringLiteral(quote rune) TokenType {
	skipnext := false
	for i, r := range s.input[s.curIndex:] {
		if skipnext {
			skipnext = false
			continue
		}
		if r == '\n' {
			s.bumpLine(i)
		}
		switch r {
		case '\\':
			skipnext = true
		case quote:
			s.curIndex += i + 1
			return QuotedStringToken
		}
	}
	s.curIndex = len(s.input)
	return UnterminatedStringErrorToken
}

const (
	localRefPrefix = "local::"
	dbRefPrefix    = "db::"
)

// scanReference assumes one has advanced over `@`; it consumes the whole
// `@local::hname` / `@db::hname` lexeme including index segments
func (s *Scanner) scanReference() TokenType {
	rest := s.input[s.curIndex:]
	switch {
	case strings.HasPrefix(rest, localRefPrefix):
		s.curIndex += len(localRefPrefix)
	case strings.HasPrefix(rest, dbRefPrefix):
		s.curIndex += len(dbRefPrefix)
	default:
		return MalformedReferenceErrorToken
	}
	r, w := utf8.DecodeRuneInString(s.input[s.curIndex:])
	if !(xid.Start(r) || r == '_') {
		return MalformedReferenceErrorToken
	}
	s.curIndex += w
	s.scanIdentifier()
	s.scanHnameSegments()
	return ReferenceToken
}

// scanIdentifier assumes first character of an identifier has been consumed,
// and scans to the end
func (s *Scanner) scanIdentifier() {
	for i, r := range s.input[s.curIndex:] {
		if !(xid.Continue(r) || r == '_') {
			s.curIndex += i
			return
		}
	}
	s.curIndex = len(s.input)
}

// scanIdentifierOrHname assumes first character of an identifier has been
// consumed; the token becomes an hname if `.name` / `[digits]` segments
// follow without intervening whitespace
func (s *Scanner) scanIdentifierOrHname() TokenType {
	s.scanIdentifier()
	if s.scanHnameSegments() {
		return HnameToken
	}
	return IdentifierToken
}

// scanHnameSegments greedily consumes `.name` and `[digits]` segments
// directly attached to the position of the Scanner. Returns whether at
// least one segment was consumed.
func (s *Scanner) scanHnameSegments() bool {
	consumed := false
	for {
		rest := s.input[s.curIndex:]
		if len(rest) >= 2 && rest[0] == '.' {
			r, _ := utf8.DecodeRuneInString(rest[1:])
			if xid.Start(r) || r == '_' {
				s.curIndex++ // the dot
				s.curIndex += utf8.RuneLen(r)
				s.scanIdentifier()
				consumed = true
				continue
			}
		}
		if loc := bracketIndexRegexp.FindString(rest); loc != "" {
			s.curIndex += len(loc)
			consumed = true
			continue
		}
		return consumed
	}
}

var bracketIndexRegexp = regexp.MustCompile(`^\[\d+\]`)

// numberRegexp covers hex, integer, float and scientific forms with an
// optional sign. Disambiguation between the forms happens during value
// classification, not here.
var numberRegexp = regexp.MustCompile(`^[+-]?(0[xX][0-9a-fA-F]+|\d+(\.\d*)?([eE][+-]?\d+)?|\.\d+([eE][+-]?\d+)?)`)

func (s *Scanner) scanNumber() TokenType {
	loc := numberRegexp.FindStringIndex(s.input[s.curIndex:])
	if len(loc) == 0 {
		panic("should always have a match according to regex and conditions in caller")
	}
	s.curIndex += loc[1]
	return NumberToken
}

func (s *Scanner) scanWhitespace() TokenType {
	for i, r := range s.input[s.curIndex:] {
		if r == '\n' {
			s.bumpLine(i)
		}
		if !unicode.IsSpace(r) {
			s.curIndex += i
			return WhitespaceToken
		}
	}
	// eof
	s.curIndex = len(s.input)
	return WhitespaceToken
}
