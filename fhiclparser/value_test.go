package fhiclparser

import (
	"math/big"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueString(t *testing.T) {
	test := func(v Value, expected string) func(*testing.T) {
		return func(t *testing.T) {
			assert.Equal(t, expected, v.String())
		}
	}

	t.Run("", test(NilValue(), "nil"))
	t.Run("", test(BoolValue(true), "True"))
	t.Run("", test(BoolValue(false), "False"))
	t.Run("", test(IntValue(big.NewInt(-42)), "-42"))
	t.Run("", test(FloatValue(decimal.RequireFromString("2.50")), "2.50"))
	t.Run("", test(HexValue("0x1F"), "0x1F"))
	t.Run("", test(SciValue("1.25e-3"), "1.25e-3"))
	t.Run("", test(StringValue("hello"), "hello"))
	t.Run("", test(InfinityValue("-"), "-infinity"))
	t.Run("", test(RefValue(LocalRef, "tab.a"), "@local::tab.a"))
	t.Run("", test(RefValue(DbRef, "x"), "@db::x"))
	t.Run("", test(ComplexValue(IntValue(big.NewInt(1)), FloatValue(decimal.RequireFromString("2.5"))), "(1,2.5)"))
	t.Run("", test(SeqValue(nil), "[]"))
	t.Run("", test(SeqValue([]Value{IntValue(big.NewInt(1)), StringValue("x")}), "[1, x]"))
	t.Run("", test(TableValue(NewTable()), "{}"))

	t.Run("table", func(t *testing.T) {
		tab := NewTable()
		tab.Set("a", IntValue(big.NewInt(1)))
		tab.Set("b", StringValue("x"))
		assert.Equal(t, "{ a: 1 b: x }", TableValue(tab).String())
	})
}

func TestTableOrder(t *testing.T) {
	tab := NewTable()
	tab.Set("b", IntValue(big.NewInt(1)))
	tab.Set("a", IntValue(big.NewInt(2)))
	tab.Set("c", IntValue(big.NewInt(3)))
	assert.Equal(t, []string{"b", "a", "c"}, tab.Keys())

	// re-binding keeps the original position
	tab.Set("a", IntValue(big.NewInt(9)))
	assert.Equal(t, []string{"b", "a", "c"}, tab.Keys())
	v, ok := tab.Get("a")
	require.True(t, ok)
	assert.Equal(t, int64(9), v.Int.Int64())

	tab.Delete("a")
	assert.Equal(t, []string{"b", "c"}, tab.Keys())
	assert.False(t, tab.Has("a"))
	tab.Delete("never-there")
	assert.Equal(t, 2, tab.Len())
}

func TestTableClone(t *testing.T) {
	inner := NewTable()
	inner.Set("x", IntValue(big.NewInt(1)))
	tab := NewTable()
	tab.Set("t", TableValue(inner))
	tab.Set("s", SeqValue([]Value{IntValue(big.NewInt(1))}))

	clone := tab.Clone()
	cv, _ := clone.Get("t")
	cv.Table.Set("x", IntValue(big.NewInt(99)))
	sv, _ := clone.Get("s")
	sv.Seq[0] = IntValue(big.NewInt(99))

	// original unchanged
	ov, _ := tab.Get("t")
	x, _ := ov.Table.Get("x")
	assert.Equal(t, int64(1), x.Int.Int64())
	osv, _ := tab.Get("s")
	assert.Equal(t, int64(1), osv.Seq[0].Int.Int64())
}

func TestWriteIndented(t *testing.T) {
	tab := NewTable()
	nested := NewTable()
	nested.Set("a", IntValue(big.NewInt(1)))
	tab.Set("tab", TableValue(nested))
	tab.Set("x", StringValue("hello"))
	tab.Set("s", SeqValue([]Value{IntValue(big.NewInt(1)), IntValue(big.NewInt(2))}))

	var sb strings.Builder
	require.NoError(t, tab.WriteIndented(&sb, ""))
	expected := "tab: {\n" +
		"  a: 1\n" +
		"}\n" +
		"x: hello\n" +
		"s: [1, 2]\n"
	assert.Equal(t, expected, sb.String())
}

func TestErrorFormat(t *testing.T) {
	err := &Error{Kind: UnknownReference, Pos: Pos{File: "a.fcl", Line: 3, Col: 7}, Message: "nope"}
	assert.Equal(t, "a.fcl:3:7 unknown reference: nope", err.Error())

	err = &Error{Kind: InvalidInclude, Message: "cycle"}
	assert.Equal(t, "invalid include: cycle", err.Error())
}
