package utils

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// IDGenerator provides centralized ID generation functionality
type IDGenerator struct{}

// NewIDGenerator creates a new ID generator
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// GenerateSessionID generates a random session identifier for the admission cookie.
// The value is opaque to clients; it carries no claims and is only used as a
// stable rate-limiting identity.
func (g *IDGenerator) GenerateSessionID() string {
	return uuid.New().String()
}

// GenerateRequestID generates a unique request ID (16 hex characters)
func (g *IDGenerator) GenerateRequestID() string {
	return generateHex(8)
}

// GenerateCorrelationID generates a UUID for correlation tracking
func (g *IDGenerator) GenerateCorrelationID() string {
	return uuid.New().String()
}

// generateHex generates a random hex string of specified byte length
func generateHex(byteLength int) string {
	bytes := make([]byte, byteLength)
	if _, err := rand.Read(bytes); err != nil {
		// crypto/rand failing is unrecoverable for ID purposes; fall back to
		// a fixed UUID-derived value rather than returning an empty string.
		return uuid.New().String()[:byteLength*2]
	}
	return hex.EncodeToString(bytes)
}

// Package-level convenience instance used by middleware
var defaultGenerator = NewIDGenerator()

// GenerateSessionID generates a session ID using the default generator
func GenerateSessionID() string {
	return defaultGenerator.GenerateSessionID()
}

// GenerateRequestID generates a request ID using the default generator
func GenerateRequestID() string {
	return defaultGenerator.GenerateRequestID()
}
