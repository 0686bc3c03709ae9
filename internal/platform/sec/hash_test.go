// Copyright (c) 2026 Pulseboard. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseboard/pulseboard/internal/platform/sec"
)

/*
TestHashPassword_Verify checks the hash/verify round trip and that a wrong
password never matches.
*/
func TestHashPassword_Verify(t *testing.T) {
	hash, err := sec.HashPassword("secret1")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", hash)

	assert.True(t, sec.CheckPasswordHash("secret1", hash))
	assert.False(t, sec.CheckPasswordHash("secret2", hash))
	assert.False(t, sec.CheckPasswordHash("", hash))
}

/*
TestHashPassword_Salted verifies that two hashes of the same password differ
(random salt) while both still verify.
*/
func TestHashPassword_Salted(t *testing.T) {
	first, err := sec.HashPassword("password123")
	require.NoError(t, err)
	second, err := sec.HashPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, sec.CheckPasswordHash("password123", first))
	assert.True(t, sec.CheckPasswordHash("password123", second))
}

/*
TestCheckPasswordHash_Malformed verifies that a corrupt stored hash surfaces
as a verification failure, not a fatal error.
*/
func TestCheckPasswordHash_Malformed(t *testing.T) {
	assert.False(t, sec.CheckPasswordHash("secret1", "not-a-bcrypt-hash"))
	assert.False(t, sec.CheckPasswordHash("secret1", ""))
}
