package utils

import (
	"github.com/google/uuid"
	"github.com/nats-io/nuid"
)

// GenerateID returns a new unique identifier string for domain entities
func GenerateID() string {
	return uuid.New().String()
}

// GenerateEventID returns a short sortable identifier for outbox events
func GenerateEventID() string {
	return nuid.Next()
}
