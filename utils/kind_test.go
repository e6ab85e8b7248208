package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct{ Name string }

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "nil", value: nil, want: "nil"},
		{name: "string", value: "a", want: "string"},
		{name: "int", value: 1, want: "int"},
		{name: "bool", value: false, want: "bool"},
		{name: "slice", value: []int{1}, want: "array"},
		{name: "array", value: [2]int{}, want: "array"},
		{name: "map", value: map[string]int{}, want: "object"},
		{name: "struct", value: sample{}, want: "object"},
		{name: "pointer", value: &sample{}, want: "object"},
		{name: "func", value: func() {}, want: "function"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, KindOf(tt.value))
		})
	}
}

func TestDescribeKinds(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "string", DescribeKinds([]string{"item", "item", "item"}))
	assert.Equal(t, "string | int | bool", DescribeKinds([]any{"item", 1, 2, false}))
	assert.Equal(t, "string", DescribeKinds[string](nil))
	assert.Equal(t, "unknown", DescribeKinds[any](nil))
}

func TestIsObjectAndIsArray(t *testing.T) {
	t.Parallel()

	assert.True(t, IsObject(map[string]int{"a": 1}))
	assert.True(t, IsObject(sample{}))
	assert.True(t, IsObject(&sample{}))
	assert.False(t, IsObject(map[string]int(nil)))
	assert.False(t, IsObject((*sample)(nil)))
	assert.False(t, IsObject([]int{}))
	assert.False(t, IsObject(nil))
	assert.False(t, IsObject("a"))

	assert.True(t, IsArray([]int{}))
	assert.True(t, IsArray([3]string{}))
	assert.False(t, IsArray(map[string]int{}))
	assert.False(t, IsArray(nil))
}
