package model

import "time"

type ContactSubmission struct {
	ID        int64
	Name      string
	Email     string
	Subject   *string
	Message   string
	Status    string
	CreatedAt time.Time
}
