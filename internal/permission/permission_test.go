package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValidLevels(t *testing.T) {
	tests := []struct {
		input string
		want  Permission
	}{
		{"read-only", ReadOnly},
		{"write-only", WriteOnly},
		{"read-write", ReadWrite},
		{"none", None},
	}

	for _, tt := range tests {
		got, err := Parse(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseEmptyNormalizesToNone(t *testing.T) {
	got, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, None, got)
}

func TestParseRejectsUnknownLevel(t *testing.T) {
	_, err := Parse("bogus")
	require.Error(t, err)
	assert.True(t, IsInvalidPermission(err))
	assert.Contains(t, err.Error(), "bogus")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, ReadOnly.Validate())
	assert.NoError(t, WriteOnly.Validate())
	assert.NoError(t, ReadWrite.Validate())
	assert.NoError(t, None.Validate())

	err := Permission("rw").Validate()
	require.Error(t, err)
	assert.True(t, IsInvalidPermission(err))

	// Empty is NOT valid as a stored level - only Parse normalizes it.
	assert.Error(t, Permission("").Validate())
}

func TestCanReadCanWriteMatrix(t *testing.T) {
	tests := []struct {
		level    Permission
		canRead  bool
		canWrite bool
	}{
		{ReadOnly, true, false},
		{WriteOnly, false, true},
		{ReadWrite, true, true},
		{None, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			assert.Equal(t, tt.canRead, tt.level.CanRead())
			assert.Equal(t, tt.canWrite, tt.level.CanWrite())
		})
	}
}

func TestIsInvalidPermissionUnrelatedError(t *testing.T) {
	assert.False(t, IsInvalidPermission(assert.AnError))
	assert.False(t, IsInvalidPermission(nil))
}
