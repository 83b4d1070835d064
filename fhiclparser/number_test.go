package fhiclparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyNumber(t *testing.T) {
	classify := func(text string) (Value, error) {
		return classifyNumber(Unparsed{Type: NumberToken, RawValue: text})
	}

	test := func(text string, expectedKind ValueKind, expected string) func(*testing.T) {
		return func(t *testing.T) {
			v, err := classify(text)
			require.NoError(t, err)
			assert.Equal(t, expectedKind, v.Kind)
			assert.Equal(t, expected, v.String())
		}
	}

	t.Run("", test("0", IntKind, "0"))
	t.Run("", test("123", IntKind, "123"))
	t.Run("", test("-42", IntKind, "-42"))
	t.Run("", test("+7", IntKind, "7"))
	// arbitrary precision
	t.Run("", test("123456789012345678901234567890", IntKind, "123456789012345678901234567890"))

	// exactly integral floats reduce to Int
	t.Run("", test("2.0", IntKind, "2"))
	t.Run("", test("2.000", IntKind, "2"))
	t.Run("", test("-3.0", IntKind, "-3"))

	// non-integral floats keep their digits after the point
	t.Run("", test("2.5", FloatKind, "2.5"))
	t.Run("", test("2.50", FloatKind, "2.50"))
	t.Run("", test("-0.125", FloatKind, "-0.125"))

	// scientific: `+` after the exponent marker is dropped, exact integers
	// render in integer form
	t.Run("", test("1.5e1", SciKind, "15"))
	t.Run("", test("1e3", SciKind, "1000"))
	t.Run("", test("1.5e+1", SciKind, "15"))
	t.Run("", test("1.25e-3", SciKind, "1.25e-3"))
	t.Run("", test("1.25e+1", SciKind, "1.25e1"))
	t.Run("", test("1.25E-3", SciKind, "1.25E-3"))

	// hex is verbatim
	t.Run("", test("0x1F", HexKind, "0x1F"))
	t.Run("", test("0XdeadBEEF", HexKind, "0XdeadBEEF"))

	t.Run("", test("infinity", InfinityKind, "infinity"))
	t.Run("", test("+infinity", InfinityKind, "+infinity"))
	t.Run("", test("-infinity", InfinityKind, "-infinity"))

	t.Run("signed hex is no numeric form", func(t *testing.T) {
		_, err := classify("-0x1F")
		require.Error(t, err)
		assert.Equal(t, InvalidToken, err.(*Error).Kind)
	})
}

func TestClassifySimple(t *testing.T) {
	simple := func(text string) (Value, error) {
		return classifySimple(Unparsed{Type: NumberToken, RawValue: text})
	}

	v, err := simple("1.5")
	require.NoError(t, err)
	assert.Equal(t, FloatKind, v.Kind)

	v, err = simple("2")
	require.NoError(t, err)
	assert.Equal(t, IntKind, v.Kind)

	_, err = simple("0x10")
	require.Error(t, err)

	_, err = simple("1.5e3")
	require.Error(t, err)
}
