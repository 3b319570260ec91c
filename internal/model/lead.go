package model

import "time"

const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusConverted = "converted"
)

type Lead struct {
	ID          int64
	Name        string
	Email       string
	Company     *string
	Description *string
	FormType    string
	Status      string
	CreatedAt   time.Time
}
