package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vsol_site/internal/model"
)

type ContactService struct {
	repo ContactRepository
}

func NewContactService(repo ContactRepository) *ContactService {
	return &ContactService{repo: repo}
}

type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

func (s *ContactService) Create(ctx context.Context, input *ContactInput) (*model.ContactSubmission, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, &FieldError{Field: "name", Message: "Name is required"}
	}
	if input.Email == "" {
		return nil, &FieldError{Field: "email", Message: "Email is required"}
	}
	if !validEmail(input.Email) {
		return nil, &FieldError{Field: "email", Message: "Invalid email format"}
	}
	if strings.TrimSpace(input.Message) == "" {
		return nil, &FieldError{Field: "message", Message: "Message is required"}
	}

	submission := &model.ContactSubmission{
		Name:      input.Name,
		Email:     input.Email,
		Message:   input.Message,
		Status:    "new",
		CreatedAt: time.Now().UTC(),
	}
	if input.Subject != "" {
		subject := input.Subject
		submission.Subject = &subject
	}

	if err := s.repo.CreateContactSubmission(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to persist contact submission: %w", err)
	}

	return submission, nil
}

func (s *ContactService) List(ctx context.Context) ([]*model.ContactSubmission, error) {
	submissions, err := s.repo.GetContactSubmissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get contact submissions: %w", err)
	}
	return submissions, nil
}
