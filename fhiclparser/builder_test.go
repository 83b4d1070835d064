package fhiclparser

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildString(t *testing.T, input string, prolog *Table) *Table {
	t.Helper()
	table, err := Build("test.fcl", input, prolog, nil)
	require.NoError(t, err)
	return table
}

func buildErr(t *testing.T, input string, prolog *Table) *Error {
	t.Helper()
	_, err := Build("test.fcl", input, prolog, nil)
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	return perr
}

func intOf(t *testing.T, table *Table, key string) *big.Int {
	t.Helper()
	v, ok := table.Get(key)
	require.True(t, ok, "missing key %q", key)
	require.Equal(t, IntKind, v.Kind)
	return v.Int
}

func TestBuildFlat(t *testing.T) {
	table := buildString(t, "a: 1 b: 2", nil)
	assert.Equal(t, []string{"a", "b"}, table.Keys())
	assert.Equal(t, int64(1), intOf(t, table, "a").Int64())
	assert.Equal(t, int64(2), intOf(t, table, "b").Int64())
}

func TestBuildAtoms(t *testing.T) {
	table := buildString(t,
		`s: "hi there"
t: 'single'
u: unquoted
b1: True
b2: False
n: nil
i: infinity
ni: -infinity
h: 0x1F
sci: 1.5e1
f: 2.50
c: (1.5, 2)
`, nil)

	get := func(key string) Value {
		v, ok := table.Get(key)
		require.True(t, ok)
		return v
	}

	assert.Equal(t, StringValue("hi there"), get("s"))
	assert.Equal(t, StringValue("single"), get("t"))
	assert.Equal(t, StringValue("unquoted"), get("u"))
	assert.Equal(t, BoolValue(true), get("b1"))
	assert.Equal(t, BoolValue(false), get("b2"))
	assert.Equal(t, NilValue(), get("n"))
	assert.Equal(t, InfinityValue(""), get("i"))
	assert.Equal(t, InfinityValue("-"), get("ni"))
	assert.Equal(t, HexValue("0x1F"), get("h"))
	assert.Equal(t, SciValue("15"), get("sci"))
	assert.Equal(t, FloatKind, get("f").Kind)
	assert.Equal(t, "2.50", get("f").String())
	assert.Equal(t, "(1.5,2)", get("c").String())
}

func TestBuildQuotedEscapes(t *testing.T) {
	table := buildString(t, `a: "say \"hi\"" b: 'don\'t'`, nil)
	v, _ := table.Get("a")
	assert.Equal(t, `say "hi"`, v.Text)
	v, _ = table.Get("b")
	assert.Equal(t, `don't`, v.Text)
}

func TestBuildNestedTable(t *testing.T) {
	table := buildString(t, "tab: { a: 1 b: { c: 2 } }", nil)
	v, ok := table.Get("tab")
	require.True(t, ok)
	require.Equal(t, TableKind, v.Kind)
	inner, ok := v.Table.Get("b")
	require.True(t, ok)
	require.Equal(t, TableKind, inner.Kind)
	assert.Equal(t, int64(2), intOf(t, inner.Table, "c").Int64())
}

func TestBuildSequence(t *testing.T) {
	table := buildString(t, "seq: [ 1, two, 3.5 ]", nil)
	v, _ := table.Get("seq")
	require.Equal(t, SeqKind, v.Kind)
	require.Len(t, v.Seq, 3)
	assert.Equal(t, IntKind, v.Seq[0].Kind)
	assert.Equal(t, StringValue("two"), v.Seq[1])
	assert.Equal(t, FloatKind, v.Seq[2].Kind)
}

func TestBuildDuplicateKeyLaterWins(t *testing.T) {
	table := buildString(t, "a: 1 b: 2 a: 3", nil)
	assert.Equal(t, int64(3), intOf(t, table, "a").Int64())
	// re-binding keeps the original position
	assert.Equal(t, []string{"a", "b"}, table.Keys())
}

func TestBuildReference(t *testing.T) {
	table := buildString(t, "tab: { a: 1 b: 2 } x: @local::tab.a", nil)
	assert.Equal(t, int64(1), intOf(t, table, "x").Int64())
}

func TestBuildReferenceToWholeTable(t *testing.T) {
	table := buildString(t, "tab: { a: 1 } x: @local::tab", nil)
	v, _ := table.Get("x")
	require.Equal(t, TableKind, v.Kind)
	assert.Equal(t, int64(1), intOf(t, v.Table, "a").Int64())
}

func TestBuildReferenceIsCopied(t *testing.T) {
	// overriding through the copy must not reach back into the referent
	table := buildString(t, "tab: { a: 1 } x: @local::tab x.a: 2", nil)
	xv, _ := table.Get("x")
	assert.Equal(t, int64(2), intOf(t, xv.Table, "a").Int64())
	tv, _ := table.Get("tab")
	assert.Equal(t, int64(1), intOf(t, tv.Table, "a").Int64())
}

func TestBuildDbRefIsAliasOfLocal(t *testing.T) {
	table := buildString(t, "p: 5 x: @db::p", nil)
	assert.Equal(t, int64(5), intOf(t, table, "x").Int64())
}

func TestBuildSeqIndexReference(t *testing.T) {
	table := buildString(t, "seq: [ {a:1 b:2}, {c:3 d:4} ] v: @local::seq[1].c", nil)
	assert.Equal(t, int64(3), intOf(t, table, "v").Int64())
}

func TestBuildRefInsideSequence(t *testing.T) {
	table := buildString(t, "a: 7 s: [ @local::a, 2 ]", nil)
	sv, _ := table.Get("s")
	assert.Equal(t, int64(7), sv.Seq[0].Int.Int64())
}

func TestBuildNestedTableScopes(t *testing.T) {
	// each table frame resolves against itself and the prolog; names bound
	// in an enclosing frame are not visible
	prolog := buildString(t, "p: 3", nil)

	table, err := Build("test.fcl", "t: { q: @local::p own: 1 r: @local::own }", prolog, nil)
	require.NoError(t, err)
	tv, _ := table.Get("t")
	assert.Equal(t, int64(3), intOf(t, tv.Table, "q").Int64())
	assert.Equal(t, int64(1), intOf(t, tv.Table, "r").Int64())

	_, err = Build("test.fcl", "a: 7 t: { inner: @local::a }", nil, nil)
	require.Error(t, err)
	assert.Equal(t, UnknownReference, err.(*Error).Kind)
}

func TestBuildHnameOverride(t *testing.T) {
	table := buildString(t, "tab: { a: 1 } tab.a: 2 y: @local::tab.a", nil)
	tv, _ := table.Get("tab")
	assert.Equal(t, int64(2), intOf(t, tv.Table, "a").Int64())
	assert.Equal(t, int64(2), intOf(t, table, "y").Int64())
	// the hname key itself never appears
	assert.Equal(t, []string{"tab", "y"}, table.Keys())
}

func TestBuildHnameCreatesFinalSegment(t *testing.T) {
	table := buildString(t, "tab: { a: 1 } tab.b: 2", nil)
	tv, _ := table.Get("tab")
	assert.Equal(t, int64(2), intOf(t, tv.Table, "b").Int64())
}

func TestBuildHnameSeqWrites(t *testing.T) {
	// in-range replaces, at-end appends, past-end appends
	table := buildString(t, "s: [ 1, 2 ] s[0]: 10 s[2]: 30 s[9]: 40", nil)
	sv, _ := table.Get("s")
	require.Len(t, sv.Seq, 4)
	assert.Equal(t, int64(10), sv.Seq[0].Int.Int64())
	assert.Equal(t, int64(2), sv.Seq[1].Int.Int64())
	assert.Equal(t, int64(30), sv.Seq[2].Int.Int64())
	assert.Equal(t, int64(40), sv.Seq[3].Int.Int64())
}

func TestBuildHnameUnknownLeadingNameIsDropped(t *testing.T) {
	table := buildString(t, "a: 1 nope.x: 2", nil)
	assert.Equal(t, []string{"a"}, table.Keys())
}

func TestBuildDeletionListScopedPerTable(t *testing.T) {
	// the nested table's hname override must not leak deletions into, or
	// out of, the outer frame
	table := buildString(t, "inner: { s: [1] s[0]: 5 } s: [9] s[0]: 7", nil)
	iv, _ := table.Get("inner")
	innerSeq, _ := iv.Table.Get("s")
	assert.Equal(t, int64(5), innerSeq.Seq[0].Int.Int64())
	outerSeq, _ := table.Get("s")
	assert.Equal(t, int64(7), outerSeq.Seq[0].Int.Int64())
	assert.Equal(t, []string{"inner", "s"}, table.Keys())
}

func TestBuildPrologScope(t *testing.T) {
	prolog := buildString(t, "p: 10", nil)

	t.Run("prolog consulted after document", func(t *testing.T) {
		table := buildString(t, "q: @local::p", prolog)
		assert.Equal(t, int64(10), intOf(t, table, "q").Int64())
		assert.Equal(t, []string{"q"}, table.Keys())
	})

	t.Run("body shadows prolog", func(t *testing.T) {
		table := buildString(t, "p: 20 r: @local::p", prolog)
		assert.Equal(t, int64(20), intOf(t, table, "r").Int64())
	})

	t.Run("hname override on prolog entry mutates a copy", func(t *testing.T) {
		prologTab := buildString(t, "cfg: { a: 1 }", nil)
		table := buildString(t, "cfg.a: 2 out: @local::cfg.a", prologTab)
		assert.Equal(t, int64(2), intOf(t, table, "out").Int64())
		// the prolog itself is untouched
		pv, _ := prologTab.Get("cfg")
		assert.Equal(t, int64(1), intOf(t, pv.Table, "a").Int64())
		// the mutated copy now lives in the document
		cv, ok := table.Get("cfg")
		require.True(t, ok)
		assert.Equal(t, int64(2), intOf(t, cv.Table, "a").Int64())
	})
}

func TestBuildErrors(t *testing.T) {
	t.Run("unknown reference", func(t *testing.T) {
		perr := buildErr(t, "x: @local::missing", nil)
		assert.Equal(t, UnknownReference, perr.Kind)
		assert.Contains(t, perr.Message, "missing")
	})

	t.Run("unknown reference path", func(t *testing.T) {
		perr := buildErr(t, "tab: { a: 1 } x: @local::tab.nope", nil)
		assert.Equal(t, UnknownReference, perr.Kind)
		assert.Contains(t, perr.Message, "tab.nope")
	})

	t.Run("reference index out of range", func(t *testing.T) {
		perr := buildErr(t, "s: [1] x: @local::s[3]", nil)
		assert.Equal(t, UnknownReference, perr.Kind)
	})

	t.Run("reference sees bindings in order", func(t *testing.T) {
		// forward references are unknown: x resolves before y is bound
		perr := buildErr(t, "x: @local::y y: 1", nil)
		assert.Equal(t, UnknownReference, perr.Kind)
	})
}
