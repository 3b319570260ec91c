package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vsol_site/internal/model"
)

var leadFormTypes = map[string]bool{
	"scan":      true,
	"challenge": true,
	"sunny":     true,
}

var leadStatuses = map[string]bool{
	model.LeadStatusNew:       true,
	model.LeadStatusContacted: true,
	model.LeadStatusConverted: true,
}

type LeadService struct {
	repo LeadRepository
}

func NewLeadService(repo LeadRepository) *LeadService {
	return &LeadService{repo: repo}
}

type LeadInput struct {
	Name        string
	Email       string
	Company     string
	Description string
	FormType    string
}

func (s *LeadService) Create(ctx context.Context, input *LeadInput) (*model.Lead, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, &FieldError{Field: "name", Message: "Missing required fields: name, email, and form_type are required"}
	}
	if input.Email == "" {
		return nil, &FieldError{Field: "email", Message: "Missing required fields: name, email, and form_type are required"}
	}
	if !validEmail(input.Email) {
		return nil, &FieldError{Field: "email", Message: "Invalid email format"}
	}
	if !leadFormTypes[input.FormType] {
		return nil, &FieldError{Field: "form_type", Message: `Invalid form_type. Must be "scan", "challenge" or "sunny"`}
	}

	lead := &model.Lead{
		Name:      input.Name,
		Email:     input.Email,
		FormType:  input.FormType,
		Status:    model.LeadStatusNew,
		CreatedAt: time.Now().UTC(),
	}
	if input.Company != "" {
		company := input.Company
		lead.Company = &company
	}
	if input.Description != "" {
		description := input.Description
		lead.Description = &description
	}

	if err := s.repo.CreateLead(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to persist lead: %w", err)
	}

	return lead, nil
}

func (s *LeadService) UpdateStatus(ctx context.Context, id int64, status string) error {
	if !leadStatuses[status] {
		return &FieldError{Field: "status", Message: `Invalid status. Must be "new", "contacted" or "converted"`}
	}

	if err := s.repo.UpdateLeadStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to update lead status: %w", err)
	}
	return nil
}

func (s *LeadService) List(ctx context.Context) ([]*model.Lead, error) {
	leads, err := s.repo.GetLeads(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get leads: %w", err)
	}
	return leads, nil
}
