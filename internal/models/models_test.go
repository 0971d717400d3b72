package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject_SetGet(t *testing.T) {
	obj := NewObject()
	obj.Set("name", String("Ada"))
	obj.Set("age", Number(36))

	v, ok := obj.Get("name")
	require.True(t, ok)
	assert.Equal(t, String("Ada"), v)

	_, ok = obj.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 2, obj.Len())
	assert.Equal(t, []string{"name", "age"}, obj.Keys())
}

func TestObject_LastWriteWins(t *testing.T) {
	obj := NewObject()
	obj.Set("k", String("a"))
	obj.Set("other", Null{})
	obj.Set("k", String("b"))

	v, ok := obj.Get("k")
	require.True(t, ok)
	assert.Equal(t, String("b"), v)
	assert.Equal(t, 2, obj.Len())
	// The first occurrence keeps its slot.
	assert.Equal(t, []string{"k", "other"}, obj.Keys())
}

func TestObject_ZeroValue(t *testing.T) {
	var obj Object
	_, ok := obj.Get("x")
	assert.False(t, ok)
	assert.False(t, obj.Delete("x"))

	obj.Set("x", Boolean(true))
	v, ok := obj.Get("x")
	require.True(t, ok)
	assert.Equal(t, Boolean(true), v)
}

func TestObject_Delete(t *testing.T) {
	obj := ObjectOf(
		Member{Key: "a", Value: Number(1)},
		Member{Key: "b", Value: Number(2)},
		Member{Key: "c", Value: Number(3)},
	)

	assert.True(t, obj.Delete("b"))
	assert.False(t, obj.Delete("b"))
	assert.Equal(t, []string{"a", "c"}, obj.Keys())

	v, ok := obj.Get("c")
	require.True(t, ok)
	assert.Equal(t, Number(3), v)
}

func TestObject_MembersIsACopy(t *testing.T) {
	obj := ObjectOf(Member{Key: "a", Value: Number(1)})
	members := obj.Members()
	members[0].Value = Number(99)

	v, _ := obj.Get("a")
	assert.Equal(t, Number(1), v)
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Value
		expected bool
	}{
		{
			name:     "member order ignored",
			a:        ObjectOf(Member{"a", String("1")}, Member{"b", String("2")}),
			b:        ObjectOf(Member{"b", String("2")}, Member{"a", String("1")}),
			expected: true,
		},
		{
			name:     "different member value",
			a:        ObjectOf(Member{"a", String("1")}),
			b:        ObjectOf(Member{"a", String("2")}),
			expected: false,
		},
		{
			name:     "different member count",
			a:        ObjectOf(Member{"a", Null{}}),
			b:        NewObject(),
			expected: false,
		},
		{
			name:     "array order matters",
			a:        Array{Number(1), Number(2)},
			b:        Array{Number(2), Number(1)},
			expected: false,
		},
		{
			name:     "nested equal",
			a:        ObjectOf(Member{"a", Array{NewObject(), Array{}}}),
			b:        ObjectOf(Member{"a", Array{NewObject(), Array{}}}),
			expected: true,
		},
		{
			name:     "string vs number",
			a:        String("1"),
			b:        Number(1),
			expected: false,
		},
		{
			name:     "nil and empty array",
			a:        Array(nil),
			b:        Array{},
			expected: true,
		},
		{
			name:     "both nil",
			a:        nil,
			b:        nil,
			expected: true,
		},
		{
			name:     "nil vs null",
			a:        nil,
			b:        Null{},
			expected: false,
		},
		{
			name:     "both nil objects",
			a:        (*Object)(nil),
			b:        (*Object)(nil),
			expected: true,
		},
		{
			name:     "nil object vs empty object",
			a:        (*Object)(nil),
			b:        NewObject(),
			expected: false,
		},
		{
			name:     "nil object nested in array",
			a:        Array{(*Object)(nil), String("x")},
			b:        Array{(*Object)(nil), String("x")},
			expected: true,
		},
		{
			name:     "nil object member vs populated",
			a:        ObjectOf(Member{"a", (*Object)(nil)}),
			b:        ObjectOf(Member{"a", ObjectOf(Member{"b", Null{}})}),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Equal(tt.a, tt.b))
			assert.Equal(t, tt.expected, Equal(tt.b, tt.a))
		})
	}
}

func TestDebug(t *testing.T) {
	v := ObjectOf(
		Member{"object", ObjectOf(
			Member{"array", Array{String("string"), NewObject(), Array{String("nested")}}},
		)},
		Member{"n", Number(7)},
		Member{"ok", Boolean(false)},
		Member{"none", Null{}},
	)

	expected := `Object{"object": Object{"array": Array[String("string"), Object{}, Array[String("nested")]]}, ` +
		`"n": Number(7), "ok": Boolean(false), "none": Null}`
	assert.Equal(t, expected, Debug(v))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "object", NewObject().Kind().String())
	assert.Equal(t, "array", Array{}.Kind().String())
	assert.Equal(t, "null", Null{}.Kind().String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}
