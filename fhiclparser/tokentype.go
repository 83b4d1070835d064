package fhiclparser

const (
	WhitespaceToken TokenType = iota + 1

	LeftBraceToken
	RightBraceToken
	LeftBracketToken
	RightBracketToken
	LeftParenToken
	RightParenToken
	ColonToken
	CommaToken

	// CommentToken covers both `# ...` and `// ...` up to end of line.
	// `#include` lines never reach the scanner; the preprocessor rewrites
	// them before parsing.
	CommentToken

	QuotedStringToken
	NumberToken

	// ReferenceToken is a whole `@local::hname` or `@db::hname` lexeme.
	ReferenceToken

	IdentifierToken

	// HnameToken is an identifier immediately followed by one or more
	// `.name` / `[digits]` segments, e.g. `tab.a` or `seq[1].c`.
	HnameToken

	UnterminatedStringErrorToken
	MalformedReferenceErrorToken
	UnexpectedCharacterToken
	NonUTF8ErrorToken

	EOFToken
)

func (tt TokenType) GoString() string {
	return tokenToDescription[tt]
}

func (tt TokenType) String() string {
	return tokenToDescription[tt]
}

func init() {
	// make sure we panic if a description isn't declared
	for tt := TokenType(1); tt != EOFToken; tt++ {
		if tokenToDescription[tt] == "" {
			panic("you have not updated tokenToDescription")
		}
	}
}

var tokenToDescription = map[TokenType]string{
	WhitespaceToken: "WhitespaceToken",

	LeftBraceToken:    "LeftBraceToken",
	RightBraceToken:   "RightBraceToken",
	LeftBracketToken:  "LeftBracketToken",
	RightBracketToken: "RightBracketToken",
	LeftParenToken:    "LeftParenToken",
	RightParenToken:   "RightParenToken",
	ColonToken:        "ColonToken",
	CommaToken:        "CommaToken",

	CommentToken: "CommentToken",

	QuotedStringToken: "QuotedStringToken",
	NumberToken:       "NumberToken",
	ReferenceToken:    "ReferenceToken",
	IdentifierToken:   "IdentifierToken",
	HnameToken:        "HnameToken",

	UnterminatedStringErrorToken: "UnterminatedStringErrorToken",
	MalformedReferenceErrorToken: "MalformedReferenceErrorToken",
	UnexpectedCharacterToken:     "UnexpectedCharacterToken",
	NonUTF8ErrorToken:            "NonUTF8ErrorToken",

	EOFToken: "EOFToken",
}
