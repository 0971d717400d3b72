package models

import (
	"fmt"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindObject Kind = iota
	KindArray
	KindString
	KindNumber
	KindBoolean
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindNull:
		return "null"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a node of a parsed document. The set of implementations is closed:
// *Object, Array, String, Number, Boolean and Null.
type Value interface {
	Kind() Kind
	isValue()
}

// Array is an ordered sequence of values.
type Array []Value

// String is a text payload, stored exactly as it appeared between the quotes.
type String string

// Number is an unsigned integer magnitude.
type Number uint64

// Boolean is true or false.
type Boolean bool

// Null is the unit value.
type Null struct{}

func (Array) Kind() Kind   { return KindArray }
func (String) Kind() Kind  { return KindString }
func (Number) Kind() Kind  { return KindNumber }
func (Boolean) Kind() Kind { return KindBoolean }
func (Null) Kind() Kind    { return KindNull }

func (*Object) isValue() {}
func (Array) isValue()   {}
func (String) isValue()  {}
func (Number) isValue()  {}
func (Boolean) isValue() {}
func (Null) isValue()    {}

// Member is a single key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object maps string keys to values. Keys are unique: setting a key that is
// already present replaces its value in place. Members are kept in first
// insertion order, but that order carries no meaning; Equal ignores it.
// The zero value is an empty object ready to use.
type Object struct {
	members []Member
	index   map[string]int
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// ObjectOf builds an object from members, applying Set in order.
func ObjectOf(members ...Member) *Object {
	o := NewObject()
	for _, m := range members {
		o.Set(m.Key, m.Value)
	}
	return o
}

func (*Object) Kind() Kind { return KindObject }

// Set assigns v to key. A later Set of the same key wins.
func (o *Object) Set(key string, v Value) {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if i, ok := o.index[key]; ok {
		o.members[i].Value = v
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v})
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.members[i].Value, true
}

// Delete removes key, reporting whether it was present.
func (o *Object) Delete(key string) bool {
	i, ok := o.index[key]
	if !ok {
		return false
	}
	o.members = append(o.members[:i], o.members[i+1:]...)
	delete(o.index, key)
	for j := i; j < len(o.members); j++ {
		o.index[o.members[j].Key] = j
	}
	return true
}

// Len returns the number of members.
func (o *Object) Len() int {
	return len(o.members)
}

// Keys returns the member keys.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}

// Members returns a copy of the member list.
func (o *Object) Members() []Member {
	out := make([]Member, len(o.members))
	copy(out, o.members)
	return out
}

// Map returns the members as a plain map.
func (o *Object) Map() map[string]Value {
	out := make(map[string]Value, len(o.members))
	for _, m := range o.members {
		out[m.Key] = m.Value
	}
	return out
}

// Equal reports whether a and b are structurally equal. Object member order is
// ignored; array element order is not.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case *Object:
		bv := b.(*Object)
		if av == nil || bv == nil {
			return av == bv
		}
		if av.Len() != bv.Len() {
			return false
		}
		for _, m := range av.members {
			other, ok := bv.Get(m.Key)
			if !ok || !Equal(m.Value, other) {
				return false
			}
		}
		return true
	case Array:
		bv := b.(Array)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// Debug renders v in a diagnostic form that shows every variant tag, for
// example Object{"a": Array[String("b"), Number(1)]}.
func Debug(v Value) string {
	var b strings.Builder
	writeDebug(&b, v)
	return b.String()
}

func writeDebug(b *strings.Builder, v Value) {
	switch tv := v.(type) {
	case *Object:
		if tv == nil {
			b.WriteString("<nil>")
			return
		}
		b.WriteString("Object{")
		for i, m := range tv.members {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%q: ", m.Key)
			writeDebug(b, m.Value)
		}
		b.WriteString("}")
	case Array:
		b.WriteString("Array[")
		for i, e := range tv {
			if i > 0 {
				b.WriteString(", ")
			}
			writeDebug(b, e)
		}
		b.WriteString("]")
	case String:
		fmt.Fprintf(b, "String(%q)", string(tv))
	case Number:
		fmt.Fprintf(b, "Number(%d)", uint64(tv))
	case Boolean:
		fmt.Fprintf(b, "Boolean(%t)", bool(tv))
	case Null:
		b.WriteString("Null")
	case nil:
		b.WriteString("<nil>")
	}
}
