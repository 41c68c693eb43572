package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("TEST_STRING", "value")
	assert.Equal(t, "value", GetEnvString("TEST_STRING", "default"))
	assert.Equal(t, "default", GetEnvString("TEST_STRING_MISSING", "default"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_INT_BAD", "not-a-number")

	assert.Equal(t, 42, GetEnvInt("TEST_INT", 7))
	assert.Equal(t, 7, GetEnvInt("TEST_INT_BAD", 7))
	assert.Equal(t, 7, GetEnvInt("TEST_INT_MISSING", 7))
}

func TestGetEnvInt64(t *testing.T) {
	t.Setenv("TEST_INT64", "9999999999")
	assert.Equal(t, int64(9999999999), GetEnvInt64("TEST_INT64", 1))
	assert.Equal(t, int64(1), GetEnvInt64("TEST_INT64_MISSING", 1))
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_BOOL_BAD", "yes-please")

	assert.True(t, GetEnvBool("TEST_BOOL", false))
	assert.False(t, GetEnvBool("TEST_BOOL_BAD", false))
	assert.True(t, GetEnvBool("TEST_BOOL_MISSING", true))
}

func TestGetEnvFloat64(t *testing.T) {
	t.Setenv("TEST_FLOAT", "0.85")
	assert.Equal(t, 0.85, GetEnvFloat64("TEST_FLOAT", 0.5))
	assert.Equal(t, 0.5, GetEnvFloat64("TEST_FLOAT_MISSING", 0.5))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "30")
	t.Setenv("TEST_DURATION_NEGATIVE", "-5")

	assert.Equal(t, 30*time.Second, GetEnvDuration("TEST_DURATION", time.Second))
	assert.Equal(t, time.Second, GetEnvDuration("TEST_DURATION_NEGATIVE", time.Second))
	assert.Equal(t, time.Second, GetEnvDuration("TEST_DURATION_MISSING", time.Second))
}

func TestGetEnvDurationMillis(t *testing.T) {
	t.Setenv("TEST_MILLIS", "250")
	assert.Equal(t, 250*time.Millisecond, GetEnvDurationMillis("TEST_MILLIS", time.Second))
}

func TestGetEnvPort(t *testing.T) {
	t.Setenv("TEST_PORT", "8082")
	t.Setenv("TEST_PORT_INVALID", "99999")

	assert.Equal(t, 8082, GetEnvPort("TEST_PORT", 8080))
	assert.Equal(t, 8080, GetEnvPort("TEST_PORT_INVALID", 8080))
}

func TestIsProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	assert.True(t, IsProduction())
	assert.False(t, IsDevelopment())

	t.Setenv("ENVIRONMENT", "development")
	assert.False(t, IsProduction())
	assert.True(t, IsDevelopment())
}
