package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThomasAtome/technical-assignment-store/internal/permission"
)

func TestMarshalValueObject(t *testing.T) {
	v := Object{
		"name":   String("ada"),
		"age":    Number(36),
		"admin":  Bool(true),
		"notes":  Null{},
		"scores": Array{Number(1), Number(2.5)},
	}

	b, err := MarshalValue(v)
	require.NoError(t, err)
	// Keys come out sorted, so the encoding is deterministic.
	assert.JSONEq(t, `{"admin":true,"age":36,"name":"ada","notes":null,"scores":[1,2.5]}`, string(b))
}

func TestMarshalValueNestedStoreAsObject(t *testing.T) {
	inner := New(nil, permission.None)
	inner.SetField("secret", String("s3cr3t"))

	outer := New(nil, permission.ReadWrite)
	outer.SetField("inner", inner)
	outer.SetField("plain", Number(1))

	b, err := MarshalValue(outer)
	require.NoError(t, err)
	// Document form ignores permissions entirely.
	assert.JSONEq(t, `{"inner":{"secret":"s3cr3t"},"plain":1}`, string(b))
}

func TestMarshalValueThunkRejected(t *testing.T) {
	_, err := MarshalValue(Thunk(func() Value { return Null{} }))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "thunk")

	_, err = MarshalValue(Object{"f": Thunk(func() Value { return Null{} })})
	require.Error(t, err)
}

func TestUnmarshalValueRoundTrip(t *testing.T) {
	src := []byte(`{"a":[1,true,null,"x"],"b":{"c":2.5}}`)

	v, err := UnmarshalValue(src)
	require.NoError(t, err)

	obj, ok := v.(Object)
	require.True(t, ok)

	arr, ok := obj["a"].(Array)
	require.True(t, ok)
	assert.Equal(t, Array{Number(1), Bool(true), Null{}, String("x")}, arr)

	inner, ok := obj["b"].(Object)
	require.True(t, ok)
	assert.Equal(t, Number(2.5), inner["c"])
}

func TestUnmarshalValueRejectsGarbage(t *testing.T) {
	_, err := UnmarshalValue([]byte(""))
	assert.Error(t, err)

	_, err = UnmarshalValue([]byte("nope"))
	assert.Error(t, err)
}

func TestObjectFromJSONRequiresObject(t *testing.T) {
	_, err := ObjectFromJSON([]byte(`[1,2,3]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "object")

	obj, err := ObjectFromJSON([]byte(`{"k":1}`))
	require.NoError(t, err)
	assert.Equal(t, Number(1), obj["k"])
}

func TestMarshalCanonicalOrderingAndEscaping(t *testing.T) {
	b, err := MarshalCanonical(Object{
		"b":   String("<tag> & text"),
		"a":   Number(1),
		"arr": Array{Bool(false), Null{}},
	})
	require.NoError(t, err)
	// No HTML escaping, keys in UTF-16 order.
	assert.Equal(t, `{"a":1,"arr":[false,null],"b":"<tag> & text"}`, string(b))
}

func TestMarshalCanonicalNumbers(t *testing.T) {
	b, err := MarshalCanonical(Object{"i": Number(5), "f": Number(2.5)})
	require.NoError(t, err)
	assert.Equal(t, `{"f":2.5,"i":5}`, string(b))
}

func TestSnapshotHashStable(t *testing.T) {
	doc := Object{"user": Object{"name": String("ada"), "age": Number(36)}}

	h1, err := SnapshotHash(doc)
	require.NoError(t, err)
	h2, err := SnapshotHash(Object{"user": Object{"age": Number(36), "name": String("ada")}})
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)

	h3, err := SnapshotHash(Object{"user": Object{"name": String("eve"), "age": Number(36)}})
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}
