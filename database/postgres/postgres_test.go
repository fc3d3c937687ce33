package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_USER", "safesphere")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "guard")
	t.Setenv("DB_SSLMODE", "")

	assert.Equal(t, "host=db port=5432 user=safesphere password=pw dbname=guard sslmode=disable", DSN())

	t.Setenv("DB_SSLMODE", "require")
	assert.Contains(t, DSN(), "sslmode=require")
}
