package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	// Stored documents carry exactly this digest shape, so the
	// transform must stay stable across releases.
	require.Equal(t, "5f4dcc3b5aa765d61d8327deb882cf99", HashPassword("password"))
	require.Equal(t, HashPassword("secret123"), HashPassword("secret123"))
	require.NotEqual(t, HashPassword("secret123"), HashPassword("secret124"))
}

func TestHashPasswordEmpty(t *testing.T) {
	// Empty input still hashes; validation happens at the binding
	// layer, not here.
	require.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", HashPassword(""))
}
