package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SubscriberStatus enumerates the states a subscriber can be in.
// Only SubscriberActive is ever written today.
type SubscriberStatus string

const (
	SubscriberActive SubscriberStatus = "active"
)

// Subscriber is a single newsletter recipient. Records are created once and
// never mutated afterwards.
type Subscriber struct {
	ID           string           `json:"id" dynamodbav:"id" db:"id"`
	Email        string           `json:"email" dynamodbav:"email" db:"email"`
	SubscribedAt string           `json:"subscribed_at" dynamodbav:"subscribed_at" db:"subscribed_at"`
	Status       SubscriberStatus `json:"status" dynamodbav:"status" db:"status"`
}

// NewSubscriber builds an active subscriber for the given address with a
// fresh identifier and a UTC creation timestamp.
func NewSubscriber(email string, now time.Time) *Subscriber {
	return &Subscriber{
		ID:           uuid.New().String(),
		Email:        NormalizeEmail(email),
		SubscribedAt: now.UTC().Format(time.RFC3339Nano),
		Status:       SubscriberActive,
	}
}

// SubscribedTime parses SubscribedAt back into a time.Time.
func (s *Subscriber) SubscribedTime() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s.SubscribedAt)
}

// NormalizeEmail returns the dedup key for an address: trimmed and lower-cased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
