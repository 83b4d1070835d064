package fhiclparser

import (
	"math/big"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Numeric conversion happens when a number token is classified into a
// Value, before the binding is handed to the resolver:
//
//   - integers become Int (arbitrary precision)
//   - floats reduce to Int when exactly integral, else keep the source's
//     digits after the point
//   - scientific notation is canonicalised: no `+` after the exponent
//     marker, integer form when the value is an exact integer
//   - hex is kept verbatim; conversion is the consumer's business
//   - infinity keeps its sign

var (
	hexRegexp     = regexp.MustCompile(`^0[xX][0-9a-fA-F]+$`)
	integerRegexp = regexp.MustCompile(`^[+-]?\d+$`)
	floatRegexp   = regexp.MustCompile(`^[+-]?\d+\.\d*$|^[+-]?\.\d+$`)
	sciRegexp     = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)[eE][+-]?\d+$`)
)

func classifyNumber(tok Unparsed) (Value, error) {
	text := tok.RawValue
	switch {
	case hexRegexp.MatchString(text):
		return HexValue(text), nil
	case sciRegexp.MatchString(text):
		return sciValueFromText(tok)
	case integerRegexp.MatchString(text):
		i, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return Value{}, errorf(InvalidToken, tok.Start, "malformed integer: %q", text)
		}
		return IntValue(i), nil
	case floatRegexp.MatchString(text):
		d, err := decimal.NewFromString(text)
		if err != nil {
			return Value{}, errorf(InvalidToken, tok.Start, "malformed float: %q", text)
		}
		if d.IsInteger() {
			return IntValue(d.BigInt()), nil
		}
		return FloatValue(d), nil
	case strings.HasSuffix(text, "infinity"):
		return infinityValueFromText(tok)
	default:
		return Value{}, errorf(InvalidToken, tok.Start, "numeric token matches no numeric form: %q", text)
	}
}

func sciValueFromText(tok Unparsed) (Value, error) {
	d, err := decimal.NewFromString(tok.RawValue)
	if err != nil {
		return Value{}, errorf(InvalidToken, tok.Start, "malformed scientific literal: %q", tok.RawValue)
	}
	if d.IsInteger() {
		return SciValue(d.String()), nil
	}
	canonical := strings.Replace(tok.RawValue, "e+", "e", 1)
	canonical = strings.Replace(canonical, "E+", "E", 1)
	return SciValue(canonical), nil
}

func infinityValueFromText(tok Unparsed) (Value, error) {
	switch tok.RawValue {
	case "infinity":
		return InfinityValue(""), nil
	case "+infinity":
		return InfinityValue("+"), nil
	case "-infinity":
		return InfinityValue("-"), nil
	default:
		return Value{}, errorf(InvalidToken, tok.Start, "numeric token matches no numeric form: %q", tok.RawValue)
	}
}

// classifySimple restricts classification to the `simple` production
// (integer or float); the components of a complex literal use this.
func classifySimple(tok Unparsed) (Value, error) {
	v, err := classifyNumber(tok)
	if err != nil {
		return Value{}, err
	}
	switch v.Kind {
	case IntKind, FloatKind:
		return v, nil
	default:
		return Value{}, errorf(InvalidToken, tok.Start, "complex component must be an integer or float: %q", tok.RawValue)
	}
}
