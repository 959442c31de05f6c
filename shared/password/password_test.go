package password_test

import (
	"strings"
	"testing"
	"villa/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestConstants(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, password.DefaultCost)
}

func TestHash(t *testing.T) {
	tests := []struct {
		name          string
		secret        string
		expectedError error
	}{
		{
			name:   "valid secret",
			secret: "villa-admin-2026",
		},
		{
			name:          "empty secret",
			secret:        "",
			expectedError: password.ErrEmptyPassword,
		},
		{
			name:          "secret longer than bcrypt limit",
			secret:        strings.Repeat("a", 100),
			expectedError: password.ErrHashingPassword,
		},
		{
			name:   "special characters",
			secret: "P@ssw0rd!#$%^&*()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.secret)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, hash)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, tt.secret, hash)
			assert.NoError(t, password.Verify(tt.secret, hash))
		})
	}
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("correct-secret")
	require.NoError(t, err)

	tests := []struct {
		name          string
		secret        string
		hash          string
		expectedError error
	}{
		{
			name:   "match",
			secret: "correct-secret",
			hash:   hash,
		},
		{
			name:          "mismatch",
			secret:        "wrong-secret",
			hash:          hash,
			expectedError: password.ErrInvalidPassword,
		},
		{
			name:          "empty secret",
			secret:        "",
			hash:          hash,
			expectedError: password.ErrInvalidPassword,
		},
		{
			name:          "empty hash",
			secret:        "correct-secret",
			hash:          "",
			expectedError: password.ErrInvalidPassword,
		},
		{
			name:          "malformed hash",
			secret:        "correct-secret",
			hash:          "not-a-bcrypt-hash",
			expectedError: password.ErrVerifyingPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.secret, tt.hash)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)

				return
			}

			assert.NoError(t, err)
		})
	}
}
