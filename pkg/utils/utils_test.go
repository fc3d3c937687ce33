package utils

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewULIDFromTimestamp(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	id, err := New().NewULIDFromTimestamp(now)
	require.NoError(t, err)

	parsed, err := ulid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(now), parsed.Time())
}

func TestFingerprint(t *testing.T) {
	u := New()

	a := u.Fingerprint("card 4532-1234-5678-9010")
	assert.Len(t, a, 64)
	assert.Equal(t, a, u.Fingerprint("card 4532-1234-5678-9010"))
	assert.NotEqual(t, a, u.Fingerprint("card 4532-1234-5678-9011"))
}
