package model

import "time"

type ConsentLevel string

const (
	ConsentAll      ConsentLevel = "all"
	ConsentRequired ConsentLevel = "required"
	ConsentNone     ConsentLevel = "none"
)

// ConsentRecord is a device's cookie-consent decision. A record past
// ExpiresAt is equivalent to no decision at all.
type ConsentRecord struct {
	DeviceID  string
	Level     ConsentLevel
	IssuedAt  time.Time
	ExpiresAt time.Time
}
