package fhicl

import (
	"regexp"
	"slices"
	"strings"

	"github.com/art-framework-suite/fhicl-go/fhiclparser"
)

// The preprocessing stage runs before the grammar sees anything: textual
// #include expansion, the prolog order guard, and prolog framing. The
// grammar itself is unified; prolog and body are parsed by the same
// productions after framing.

// A line is an include iff it starts at column 0 with exactly `#include`,
// followed by one or more spaces and a double-quoted filename. Any other line
// starting with `#include` is an InvalidInclude error; every other line
// starting with `#` is a comment.
var includeLineRegexp = regexp.MustCompile(`^#include( +)"([^"]*)"[ \t]*$`)

const includePrefix = "#include"

type includeExpander struct {
	loader Loader
	active []string // chain of files currently being expanded, for cycle detection
}

func expandIncludes(text string, loader Loader) (string, error) {
	e := &includeExpander{loader: loader}
	return e.expand(text)
}

func (e *includeExpander) expand(text string) (string, error) {
	if !strings.Contains(text, includePrefix) {
		return text, nil
	}
	var out strings.Builder
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i > 0 {
			out.WriteString("\n")
		}
		if !strings.HasPrefix(line, includePrefix) {
			out.WriteString(line)
			continue
		}
		m := includeLineRegexp.FindStringSubmatch(line)
		if m == nil {
			return "", &fhiclparser.Error{
				Kind:    fhiclparser.InvalidInclude,
				Message: "malformed include directive: " + line,
			}
		}
		filename := m[2]
		if slices.Contains(e.active, filename) {
			return "", &fhiclparser.Error{
				Kind:    fhiclparser.InvalidInclude,
				Message: "include cycle: " + strings.Join(append(e.active, filename), " -> "),
			}
		}
		content, err := e.loader(filename)
		if err != nil {
			return "", &fhiclparser.Error{
				Kind:    fhiclparser.InvalidInclude,
				Message: "cannot include \"" + filename + "\": " + err.Error(),
			}
		}
		e.active = append(e.active, filename)
		expanded, err := e.expand(content)
		e.active = e.active[:len(e.active)-1]
		if err != nil {
			return "", err
		}
		out.WriteString(expanded)
	}
	return out.String(), nil
}

const (
	beginProlog = "BEGIN_PROLOG"
	endProlog   = "END_PROLOG"
)

// splitProlog separates the prolog blocks from the body, enforcing the
// order guard: no non-comment content may precede a prolog. The split is
// token-driven so that prolog markers sharing a line with other content are
// handled, and markers inside strings or comments are ignored. Newlines of
// skipped regions are preserved in the body so its positions stay aligned
// with the expanded input.
func splitProlog(text string) (prolog, body string, err error) {
	s := fhiclparser.NewScanner("", text)
	var prologBuf, bodyBuf strings.Builder
	inProlog := false
	var prologStart fhiclparser.Pos
	var bodyStatement *fhiclparser.Unparsed
	var bodyLine string

	for {
		tt := s.NextToken()
		if tt == fhiclparser.EOFToken {
			break
		}
		if tt == fhiclparser.NonUTF8ErrorToken {
			return "", "", &fhiclparser.Error{
				Kind:    fhiclparser.ParseFailure,
				Pos:     s.Start(),
				Message: "input is not valid UTF-8",
			}
		}
		tok := s.Token()
		if tt == fhiclparser.IdentifierToken && tok == beginProlog {
			if inProlog {
				return "", "", markerError(s, "nested BEGIN_PROLOG")
			}
			if bodyStatement != nil {
				return "", "", &fhiclparser.Error{
					Kind:    fhiclparser.IllegalStatement,
					Pos:     bodyStatement.Start,
					Message: "non-comment content before BEGIN_PROLOG: " + strings.TrimSpace(bodyLine),
				}
			}
			inProlog = true
			prologStart = s.Start()
			continue
		}
		if tt == fhiclparser.IdentifierToken && tok == endProlog {
			if !inProlog {
				return "", "", markerError(s, "END_PROLOG without matching BEGIN_PROLOG")
			}
			inProlog = false
			continue
		}
		if inProlog {
			prologBuf.WriteString(tok)
			padNewlines(&bodyBuf, tok)
			continue
		}
		bodyBuf.WriteString(tok)
		isContent := tt != fhiclparser.WhitespaceToken && tt != fhiclparser.CommentToken
		if isContent && bodyStatement == nil {
			u := fhiclparser.CreateUnparsed(s)
			bodyStatement = &u
			bodyLine = s.CurrentLine()
		}
	}
	if inProlog {
		return "", "", &fhiclparser.Error{
			Kind:    fhiclparser.IllegalStatement,
			Pos:     prologStart,
			Message: "unterminated prolog, missing END_PROLOG",
		}
	}
	return prologBuf.String(), bodyBuf.String(), nil
}

func markerError(s *fhiclparser.Scanner, msg string) error {
	return &fhiclparser.Error{
		Kind:    fhiclparser.IllegalStatement,
		Pos:     s.Start(),
		Message: msg,
	}
}

func padNewlines(buf *strings.Builder, tok string) {
	n := strings.Count(tok, "\n")
	for i := 0; i < n; i++ {
		buf.WriteString("\n")
	}
}
