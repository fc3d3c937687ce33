package jwtPkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "TEST_JWT_SECRET"

func TestSignAndVerify(t *testing.T) {
	t.Setenv(testSecretKey, "s3cr3t")

	token, exp, err := Sign(map[string]interface{}{
		"id":       "01HZX",
		"email":    "user@safesphere.app",
		"username": "user",
	}, time.Hour, testSecretKey)
	require.NoError(t, err)
	assert.Greater(t, exp, time.Now().Unix())

	parsed, err := VerifyToken(token, testSecretKey)
	require.NoError(t, err)

	user, err := UserFromClaims(parsed)
	require.NoError(t, err)
	assert.Equal(t, "01HZX", user.ID)
	assert.Equal(t, "user", user.Username)
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	t.Setenv(testSecretKey, "s3cr3t")
	token, _, err := Sign(map[string]interface{}{"id": "1"}, time.Hour, testSecretKey)
	require.NoError(t, err)

	t.Setenv(testSecretKey, "other")
	_, err = VerifyToken(token, testSecretKey)
	assert.Error(t, err)
}

func TestUserFromClaimsMissingFields(t *testing.T) {
	t.Setenv(testSecretKey, "s3cr3t")
	token, _, err := Sign(map[string]interface{}{"id": "1"}, time.Hour, testSecretKey)
	require.NoError(t, err)

	parsed, err := VerifyToken(token, testSecretKey)
	require.NoError(t, err)

	_, err = UserFromClaims(parsed)
	assert.ErrorIs(t, err, ErrMissingClaims)
}

func TestSignWithoutSecret(t *testing.T) {
	t.Setenv(testSecretKey, "")
	_, _, err := Sign(nil, time.Hour, testSecretKey)
	assert.Error(t, err)
}
