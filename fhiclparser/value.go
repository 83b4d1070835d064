package fhiclparser

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// ValueKind discriminates the Value sum type.
type ValueKind int

const (
	NilKind ValueKind = iota + 1
	BoolKind
	IntKind
	FloatKind
	HexKind
	SciKind
	ComplexKind
	InfinityKind
	StringKind
	RefKind
	SeqKind
	TableKind
)

// RefScope distinguishes @local:: and @db:: references. Both resolve the
// same way; the scope is kept for rendering and diagnostics.
type RefScope int

const (
	LocalRef RefScope = iota + 1
	DbRef
)

// Value is one parameter value. Exactly the fields implied by Kind are
// meaningful; the zero Value is invalid.
type Value struct {
	Kind ValueKind

	Bool  bool            // BoolKind
	Int   *big.Int        // IntKind; never mutated once constructed
	Float decimal.Decimal // FloatKind; digits after the point preserved

	// Text holds the payload of the text-backed kinds: the verbatim hex
	// lexeme, the canonicalised scientific text, the unquoted string body,
	// or the target hname of a reference.
	Text string

	RefScope   RefScope // RefKind
	Real, Imag *Value   // ComplexKind; each IntKind or FloatKind
	Sign       string   // InfinityKind: "", "+" or "-"

	Seq   []Value // SeqKind
	Table *Table  // TableKind
}

func NilValue() Value              { return Value{Kind: NilKind} }
func BoolValue(b bool) Value       { return Value{Kind: BoolKind, Bool: b} }
func IntValue(i *big.Int) Value    { return Value{Kind: IntKind, Int: i} }
func HexValue(s string) Value      { return Value{Kind: HexKind, Text: s} }
func SciValue(s string) Value      { return Value{Kind: SciKind, Text: s} }
func StringValue(s string) Value   { return Value{Kind: StringKind, Text: s} }
func InfinityValue(s string) Value { return Value{Kind: InfinityKind, Sign: s} }
func SeqValue(vs []Value) Value    { return Value{Kind: SeqKind, Seq: vs} }
func TableValue(t *Table) Value    { return Value{Kind: TableKind, Table: t} }

func FloatValue(d decimal.Decimal) Value {
	return Value{Kind: FloatKind, Float: d}
}

func RefValue(scope RefScope, target string) Value {
	return Value{Kind: RefKind, RefScope: scope, Text: target}
}

func ComplexValue(re, im Value) Value {
	return Value{Kind: ComplexKind, Real: &re, Imag: &im}
}

// Clone returns a deep copy. Tables and sequences are copied; big.Int
// payloads are shared since they are never mutated after construction.
func (v Value) Clone() Value {
	result := v
	switch v.Kind {
	case SeqKind:
		result.Seq = make([]Value, len(v.Seq))
		for i, e := range v.Seq {
			result.Seq[i] = e.Clone()
		}
	case TableKind:
		result.Table = v.Table.Clone()
	case ComplexKind:
		re := v.Real.Clone()
		im := v.Imag.Clone()
		result.Real = &re
		result.Imag = &im
	}
	return result
}

func (v Value) String() string {
	var sb strings.Builder
	v.write(&sb)
	return sb.String()
}

func (v Value) write(w io.StringWriter) {
	switch v.Kind {
	case NilKind:
		w.WriteString("nil")
	case BoolKind:
		if v.Bool {
			w.WriteString("True")
		} else {
			w.WriteString("False")
		}
	case IntKind:
		w.WriteString(v.Int.String())
	case FloatKind:
		// keep the digits after the point; String() would trim trailing zeros
		if exp := v.Float.Exponent(); exp < 0 {
			w.WriteString(v.Float.StringFixed(-exp))
		} else {
			w.WriteString(v.Float.String())
		}
	case HexKind, SciKind, StringKind:
		w.WriteString(v.Text)
	case ComplexKind:
		w.WriteString("(")
		v.Real.write(w)
		w.WriteString(",")
		v.Imag.write(w)
		w.WriteString(")")
	case InfinityKind:
		w.WriteString(v.Sign + "infinity")
	case RefKind:
		if v.RefScope == DbRef {
			w.WriteString("@db::" + v.Text)
		} else {
			w.WriteString("@local::" + v.Text)
		}
	case SeqKind:
		w.WriteString("[")
		for i, e := range v.Seq {
			if i > 0 {
				w.WriteString(", ")
			}
			e.write(w)
		}
		w.WriteString("]")
	case TableKind:
		if v.Table.Empty() {
			w.WriteString("{}")
			return
		}
		w.WriteString("{")
		for _, k := range v.Table.Keys() {
			e, _ := v.Table.Get(k)
			w.WriteString(" " + k + ": ")
			e.write(w)
		}
		w.WriteString(" }")
	default:
		w.WriteString(fmt.Sprintf("<invalid value kind %d>", v.Kind))
	}
}

// Table is an insertion-ordered name → Value mapping. Re-binding an
// existing key keeps the key's original position and replaces the value.
type Table struct {
	keys    []string
	entries map[string]Value
}

func NewTable() *Table {
	return &Table{entries: make(map[string]Value)}
}

func (t *Table) Len() int {
	return len(t.keys)
}

func (t *Table) Empty() bool {
	return len(t.keys) == 0
}

// Keys returns the key list in insertion order. The returned slice is
// owned by the Table.
func (t *Table) Keys() []string {
	return t.keys
}

func (t *Table) Get(name string) (Value, bool) {
	v, ok := t.entries[name]
	return v, ok
}

func (t *Table) Has(name string) bool {
	_, ok := t.entries[name]
	return ok
}

func (t *Table) Set(name string, v Value) {
	if _, ok := t.entries[name]; !ok {
		t.keys = append(t.keys, name)
	}
	t.entries[name] = v
}

func (t *Table) Delete(name string) {
	if _, ok := t.entries[name]; !ok {
		return
	}
	delete(t.entries, name)
	for i, k := range t.keys {
		if k == name {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
}

func (t *Table) Clone() *Table {
	result := NewTable()
	for _, k := range t.keys {
		result.Set(k, t.entries[k].Clone())
	}
	return result
}

func (t *Table) String() string {
	var sb strings.Builder
	t.writeIndented(&sb, "")
	return sb.String()
}

// WriteIndented renders the table one binding per line, nested tables and
// their bindings indented. This is the human-readable CLI output.
func (t *Table) WriteIndented(w io.Writer, indent string) error {
	var sb strings.Builder
	t.writeIndented(&sb, indent)
	_, err := io.WriteString(w, sb.String())
	return err
}

func (t *Table) writeIndented(sb *strings.Builder, indent string) {
	for _, k := range t.keys {
		v := t.entries[k]
		sb.WriteString(indent)
		sb.WriteString(k)
		sb.WriteString(": ")
		if v.Kind == TableKind && !v.Table.Empty() {
			sb.WriteString("{\n")
			v.Table.writeIndented(sb, indent+"  ")
			sb.WriteString(indent)
			sb.WriteString("}\n")
		} else {
			v.write(sb)
			sb.WriteString("\n")
		}
	}
}
