package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThomasAtome/technical-assignment-store/internal/permission"
)

func TestUndeclaredFieldsMirrorDefaultPolicy(t *testing.T) {
	tests := []struct {
		policy   permission.Permission
		canRead  bool
		canWrite bool
	}{
		{permission.ReadWrite, true, true},
		{permission.ReadOnly, true, false},
		{permission.WriteOnly, false, true},
		{permission.None, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			s := New(nil, tt.policy)
			assert.Equal(t, tt.canRead, s.AllowedToRead("anything"))
			assert.Equal(t, tt.canWrite, s.AllowedToWrite("anything"))
		})
	}
}

func TestDeclarationOverridesDefaultPolicy(t *testing.T) {
	def := NewDefinition("secrets")
	require.NoError(t, def.Declare("locked", "none"))
	require.NoError(t, def.Declare("open", "read-write"))

	// Permissive default does not leak into a locked declared field.
	s := New(def, permission.ReadWrite)
	assert.False(t, s.AllowedToRead("locked"))
	assert.False(t, s.AllowedToWrite("locked"))

	// Restrictive default does not shadow an open declared field.
	s = New(def, permission.None)
	assert.True(t, s.AllowedToRead("open"))
	assert.True(t, s.AllowedToWrite("open"))
}

func TestDeclareBogusPermissionFailsAndRegistersNothing(t *testing.T) {
	def := NewDefinition("user")
	err := def.Declare("name", "bogus")
	require.Error(t, err)
	assert.True(t, permission.IsInvalidPermission(err))

	_, declared := def.Lookup("name")
	assert.False(t, declared)
}

func TestDeclareEmptyNormalizesToNone(t *testing.T) {
	def := NewDefinition("user")
	require.NoError(t, def.Declare("hidden", ""))

	p, declared := def.Lookup("hidden")
	require.True(t, declared)
	assert.Equal(t, permission.None, p)
}

func TestReadTopLevel(t *testing.T) {
	s := New(nil, permission.ReadWrite)
	s.SetField("name", String("ada"))

	got, err := s.Read("name")
	require.NoError(t, err)
	assert.Equal(t, String("ada"), got)
}

func TestReadMissingFieldIsNilNotError(t *testing.T) {
	s := New(nil, permission.ReadWrite)

	got, err := s.Read("ghost")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deep traversal through a missing chain also reads as nil.
	got, err = s.Read("ghost:deeper:still")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReadDenied(t *testing.T) {
	s := New(nil, permission.WriteOnly)
	s.SetField("secret", String("hunter2"))

	_, err := s.Read("secret")
	require.Error(t, err)
	assert.True(t, IsPermissionDenied(err))
}

func TestWriteReadRoundTrip(t *testing.T) {
	s := New(nil, permission.ReadWrite)

	written, err := s.Write("a:b:c", Number(5))
	require.NoError(t, err)
	assert.Equal(t, Number(5), written)

	got, err := s.Read("a:b:c")
	require.NoError(t, err)
	assert.Equal(t, Number(5), got)
}

func TestWriteAutoVivifiesPlainObjects(t *testing.T) {
	s := New(nil, permission.ReadWrite)

	_, err := s.Write("x:y", String("deep"))
	require.NoError(t, err)

	// The intermediate container is a plain Object, not a Store.
	x, ok := s.Field("x")
	require.True(t, ok)
	obj, ok := x.(Object)
	require.True(t, ok, "vivified intermediate must be an Object, got %T", x)
	assert.Equal(t, String("deep"), obj["y"])

	got, err := s.Read("x:y")
	require.NoError(t, err)
	assert.Equal(t, String("deep"), got)
}

func TestWriteOverwritesWithoutMerging(t *testing.T) {
	s := New(nil, permission.ReadWrite)
	s.SetField("cfg", Object{"a": Number(1), "b": Number(2)})

	_, err := s.Write("cfg", Number(7))
	require.NoError(t, err)

	got, err := s.Read("cfg")
	require.NoError(t, err)
	assert.Equal(t, Number(7), got)
}

func TestWriteDeniedLeavesValueUnchanged(t *testing.T) {
	def := NewDefinition("user")
	require.NoError(t, def.Declare("name", "read-only"))

	s := New(def, permission.ReadWrite)
	s.SetField("name", String("ada"))

	_, err := s.Write("name", String("mallory"))
	require.Error(t, err)
	assert.True(t, IsPermissionDenied(err))

	got, err := s.Read("name")
	require.NoError(t, err)
	assert.Equal(t, String("ada"), got)
}

func TestLazyThunkTopLevel(t *testing.T) {
	s := New(nil, permission.ReadWrite)
	s.SetField("now", Thunk(func() Value { return Number(42) }))

	got, err := s.Read("now")
	require.NoError(t, err)
	assert.Equal(t, Number(42), got)
}

func TestLazyThunkAtDepth(t *testing.T) {
	s := New(nil, permission.ReadWrite)
	s.SetField("outer", Object{
		"inner": Thunk(func() Value { return String("computed") }),
	})

	got, err := s.Read("outer:inner")
	require.NoError(t, err)
	assert.Equal(t, String("computed"), got)
}

func TestThunkReturningContainerIsTraversed(t *testing.T) {
	s := New(nil, permission.ReadWrite)
	s.SetField("lazy", Thunk(func() Value {
		return Object{"name": String("ada")}
	}))

	got, err := s.Read("lazy:name")
	require.NoError(t, err)
	assert.Equal(t, String("ada"), got)
}

func TestThunkReturningStoreIsTraversed(t *testing.T) {
	inner := New(nil, permission.None)
	inner.SetField("field", String("reachable"))

	s := New(nil, permission.ReadWrite)
	s.SetField("lazy", Thunk(func() Value { return inner }))

	// The store reached through a thunk is part of the same authorized
	// access: its own policy is not consulted mid-walk.
	got, err := s.Read("lazy:field")
	require.NoError(t, err)
	assert.Equal(t, String("reachable"), got)
}

func TestDelegationBoundary(t *testing.T) {
	innerDef := NewDefinition("inner")
	require.NoError(t, innerDef.Declare("field", "read-write"))

	inner := New(innerDef, permission.None)
	inner.SetField("field", String("visible"))
	inner.SetField("otherField", String("hidden"))

	t.Run("nested declaration wins over restrictive outer policy", func(t *testing.T) {
		outer := New(nil, permission.None)
		outer.SetField("inner", inner)

		got, err := outer.Read("inner:field")
		require.NoError(t, err)
		assert.Equal(t, String("visible"), got)
	})

	t.Run("nested policy wins over permissive outer policy", func(t *testing.T) {
		outer := New(nil, permission.ReadWrite)
		outer.SetField("inner", inner)

		_, err := outer.Read("inner:otherField")
		require.Error(t, err)
		assert.True(t, IsPermissionDenied(err))
	})
}

func TestWriteDelegatesToNestedStore(t *testing.T) {
	innerDef := NewDefinition("inner")
	require.NoError(t, innerDef.Declare("field", "read-write"))
	require.NoError(t, innerDef.Declare("locked", "read-only"))

	inner := New(innerDef, permission.None)
	outer := New(nil, permission.None) // outer would deny everything

	outer.SetField("inner", inner)

	_, err := outer.Write("inner:field", Number(9))
	require.NoError(t, err)

	got, err := inner.Read("field")
	require.NoError(t, err)
	assert.Equal(t, Number(9), got)

	_, err = outer.Write("inner:locked", Number(1))
	require.Error(t, err)
	assert.True(t, IsPermissionDenied(err))
}

func TestReadSingleSegmentReturnsNestedStoreItself(t *testing.T) {
	inner := New(nil, permission.None)
	outer := New(nil, permission.ReadWrite)
	outer.SetField("inner", inner)

	got, err := outer.Read("inner")
	require.NoError(t, err)
	assert.Same(t, inner, got)
}

func TestEntriesRequiresDeclarationAndReadability(t *testing.T) {
	def := NewDefinition("user")
	require.NoError(t, def.Declare("name", "read-write"))
	require.NoError(t, def.Declare("password", "write-only"))

	s := New(def, permission.ReadWrite)
	s.SetField("name", String("ada"))
	s.SetField("password", String("hunter2"))
	s.SetField("undeclared", String("exposed?"))

	entries := s.Entries()

	// Declared and readable.
	assert.Equal(t, String("ada"), entries["name"])
	// Declared but not readable.
	assert.NotContains(t, entries, "password")
	// Undeclared: excluded even though the default policy would allow
	// reading it through Read.
	assert.NotContains(t, entries, "undeclared")

	direct, err := s.Read("undeclared")
	require.NoError(t, err)
	assert.Equal(t, String("exposed?"), direct)
}

func TestEntriesSkipsDeclaredButUnsetFields(t *testing.T) {
	def := NewDefinition("user")
	require.NoError(t, def.Declare("name", "read-write"))

	s := New(def, permission.None)
	assert.Empty(t, s.Entries())
}

func TestWriteEntriesBypassesPermissionsAndPaths(t *testing.T) {
	def := NewDefinition("user")
	require.NoError(t, def.Declare("locked", "none"))

	s := New(def, permission.None)
	s.WriteEntries(map[string]Value{
		"locked": String("loaded anyway"),
		"a:b":    Number(1), // literal key, not a path
	})

	v, ok := s.Field("locked")
	require.True(t, ok)
	assert.Equal(t, String("loaded anyway"), v)

	v, ok = s.Field("a:b")
	require.True(t, ok)
	assert.Equal(t, Number(1), v)

	// No "a" field was vivified - the colon key was taken literally.
	_, ok = s.Field("a")
	assert.False(t, ok)
}

func TestPathThroughArrayIndex(t *testing.T) {
	s := New(nil, permission.ReadWrite)
	s.SetField("items", Array{
		Object{"sku": String("widget")},
		Object{"sku": String("gadget")},
	})

	got, err := s.Read("items:1:sku")
	require.NoError(t, err)
	assert.Equal(t, String("gadget"), got)

	// Out-of-range and non-numeric segments read as nil.
	got, err = s.Read("items:7:sku")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = s.Read("items:first")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWriteThroughArrayIndex(t *testing.T) {
	s := New(nil, permission.ReadWrite)
	s.SetField("items", Array{Object{"qty": Number(1)}})

	_, err := s.Write("items:0:qty", Number(3))
	require.NoError(t, err)

	got, err := s.Read("items:0:qty")
	require.NoError(t, err)
	assert.Equal(t, Number(3), got)
}

func TestReplacingNestedStoreFieldDropsDelegation(t *testing.T) {
	innerDef := NewDefinition("inner")
	require.NoError(t, innerDef.Declare("field", "read-write"))
	inner := New(innerDef, permission.None)
	inner.SetField("field", String("delegated"))

	outer := New(nil, permission.ReadWrite)
	outer.SetField("inner", inner)

	// Replace the nested store with a plain object: permission checks for
	// the path now happen at the outer boundary instead.
	outer.SetField("inner", Object{"field": String("plain")})

	got, err := outer.Read("inner:field")
	require.NoError(t, err)
	assert.Equal(t, String("plain"), got)
}

func TestSharedDefinitionAcrossInstances(t *testing.T) {
	def := NewDefinition("user")
	require.NoError(t, def.Declare("name", "read-only"))

	a := New(def, permission.None)
	b := New(def, permission.None)

	assert.True(t, a.AllowedToRead("name"))
	assert.True(t, b.AllowedToRead("name"))
	assert.False(t, a.AllowedToWrite("name"))
	assert.False(t, b.AllowedToWrite("name"))
}
