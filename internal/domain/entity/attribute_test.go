package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttributes_Normalize(t *testing.T) {
	attrs := Attributes{
		{Key: " Size ", Value: "M "},
		{Key: "Color", Value: " Red"},
	}

	normalized := attrs.Normalize()

	assert.Equal(t, Attributes{
		{Key: "color", Value: "red"},
		{Key: "size", Value: "m"},
	}, normalized)

	// The receiver must not be modified.
	assert.Equal(t, " Size ", attrs[0].Key)
}

func TestAttributes_Equal_IgnoresCaseAndOrder(t *testing.T) {
	a := Attributes{
		{Key: "color", Value: "red"},
		{Key: "size", Value: "m"},
	}
	b := Attributes{
		{Key: "SIZE", Value: " M"},
		{Key: " Color", Value: "Red "},
	}

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
}

func TestAttributes_Equal_DifferentValues(t *testing.T) {
	a := Attributes{{Key: "color", Value: "red"}}
	b := Attributes{{Key: "color", Value: "blue"}}
	c := Attributes{{Key: "color", Value: "red"}, {Key: "size", Value: "m"}}

	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestAttributes_IsWellFormed(t *testing.T) {
	assert.False(t, Attributes{}.IsWellFormed())
	assert.False(t, Attributes{{Key: "color", Value: "  "}}.IsWellFormed())
	assert.False(t, Attributes{{Key: "", Value: "red"}}.IsWellFormed())
	assert.True(t, Attributes{{Key: "color", Value: "red"}}.IsWellFormed())
}
