package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShape_Name(t *testing.T) {
	tests := []struct {
		shape Shape
		want  string
	}{
		{Int(), "int"},
		{Optional(Int()), "int|none"},
		{List(Int()), "list of int"},
		{Union(Int(), Float()), "int|float"},
		{Literal("a", "b"), "one of [a, b]"},
		{Enum("color", EnumMember{Name: "red", Value: 0}), "color"},
		{Bytes(), "bytes"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.shape.Name())
	}
}

func TestShape_Validity(t *testing.T) {
	assert.False(t, Shape{}.valid())
	assert.False(t, Union().valid())
	assert.False(t, Enum("empty").valid())
	assert.False(t, Literal().valid())
	assert.False(t, List(Shape{}).valid())
	assert.True(t, List(Union(Int(), Float())).valid())
}

func TestShape_Choices(t *testing.T) {
	assert.Equal(t, []string{"true", "false"}, Bool().Choices())
	assert.Nil(t, Int().Choices())
	assert.Equal(t, []string{"red", "blue"},
		Enum("c", EnumMember{Name: "red"}, EnumMember{Name: "blue"}).Choices())
}
