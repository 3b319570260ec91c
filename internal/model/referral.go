package model

import "time"

type Referral struct {
	ID                int64
	ReferrerFirstName string
	ReferrerLastName  string
	LinkedinURL       string
	Email             string
	Phone             *string
	About             *string
	IPAddress         string
	UserAgent         string
	SubmittedAt       time.Time
}
