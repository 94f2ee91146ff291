package services

import (
	"testing"

	"github.com/jobdesk/jobdesk-be/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister_HashesPassword(t *testing.T) {
	users, db := newUserService(t)

	user, err := users.Register("alice@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Empty(t, user.PasswordHash, "hash must never be returned")

	var storedHash string
	require.NoError(t, db.QueryRow("SELECT password_hash FROM users WHERE id = ?", user.ID).Scan(&storedHash))
	assert.NotEqual(t, "secret1", storedHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("secret1")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users, db := newUserService(t)

	_, err := users.Register("alice@example.com", "secret1")
	require.NoError(t, err)

	_, err = users.Register("alice@example.com", "other-password")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeDuplicateEmail))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
	assert.Equal(t, 1, count, "duplicate registration must not create a second record")
}

func TestRegister_Validation(t *testing.T) {
	users, _ := newUserService(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "secret1"},
		{"malformed email", "not-an-email", "secret1"},
		{"empty password", "alice@example.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := users.Register(tt.email, tt.password)
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.CodeValidation))
		})
	}
}

func TestAuthenticate(t *testing.T) {
	users, _ := newUserService(t)
	registered := registerUser(t, users, "alice@example.com")

	user, err := users.Authenticate("alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)
}

func TestAuthenticate_NoUserEnumeration(t *testing.T) {
	users, _ := newUserService(t)
	registerUser(t, users, "alice@example.com")

	// Wrong password for a known email and any password for an unknown
	// email must fail with the same code.
	_, knownErr := users.Authenticate("alice@example.com", "wrong")
	require.Error(t, knownErr)
	assert.True(t, apperr.Is(knownErr, apperr.CodeInvalidCredentials))

	_, unknownErr := users.Authenticate("nobody@example.com", "whatever")
	require.Error(t, unknownErr)
	assert.True(t, apperr.Is(unknownErr, apperr.CodeInvalidCredentials))

	assert.Equal(t, knownErr.Error(), unknownErr.Error())
}
