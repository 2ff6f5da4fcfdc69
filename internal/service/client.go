package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/pkordes/travel-agency/internal/domain"
	"github.com/pkordes/travel-agency/internal/repo"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ClientService implements business logic for Client operations.
type ClientService struct {
	clients repo.ClientRepo
}

// NewClientService constructs a ClientService backed by the provided ClientRepo.
func NewClientService(clients repo.ClientRepo) *ClientService {
	return &ClientService{clients: clients}
}

// Create normalizes and validates a new client, then persists it.
// Returns domain.ErrValidation if input violates format rules and
// domain.ErrPeselTaken if the PESEL is already registered.
func (s *ClientService) Create(ctx context.Context, client domain.Client) (domain.Client, error) {
	client = normalizeClient(client)
	if err := validateClient(client); err != nil {
		return domain.Client{}, err
	}
	result, err := s.clients.Create(ctx, client)
	if err != nil {
		return domain.Client{}, fmt.Errorf("service.ClientService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single client by ID.
// Returns domain.ErrClientNotFound if it does not exist.
func (s *ClientService) GetByID(ctx context.Context, id int) (domain.Client, error) {
	result, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return domain.Client{}, fmt.Errorf("service.ClientService.GetByID: %w", err)
	}
	return result, nil
}

// normalizeClient trims surrounding whitespace; a blank telephone becomes nil.
func normalizeClient(c domain.Client) domain.Client {
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.Email = strings.TrimSpace(c.Email)
	c.Pesel = strings.TrimSpace(c.Pesel)
	if c.Telephone != nil {
		phone := strings.TrimSpace(*c.Telephone)
		if phone == "" {
			c.Telephone = nil
		} else {
			c.Telephone = &phone
		}
	}
	return c
}

// validateClient enforces the registration rules, first failure wins:
//   - first name, last name, email and PESEL are required.
//   - PESEL is exactly 11 digits.
//   - Telephone, if set, is "+" followed by exactly 11 digits.
//   - Email looks like user@domain.tld.
func validateClient(c domain.Client) error {
	switch {
	case c.FirstName == "":
		return fmt.Errorf("%w: first_name is required", domain.ErrValidation)
	case c.LastName == "":
		return fmt.Errorf("%w: last_name is required", domain.ErrValidation)
	case c.Email == "":
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	case c.Pesel == "":
		return fmt.Errorf("%w: pesel is required", domain.ErrValidation)
	}
	if len(c.Pesel) != 11 || !allDigits(c.Pesel) {
		return fmt.Errorf("%w: pesel must be exactly 11 digits", domain.ErrValidation)
	}
	if c.Telephone != nil {
		phone := *c.Telephone
		if len(phone) != 12 || phone[0] != '+' || !allDigits(phone[1:]) {
			return fmt.Errorf("%w: telephone must start with '+' followed by 11 digits", domain.ErrValidation)
		}
	}
	if !emailPattern.MatchString(c.Email) {
		return fmt.Errorf("%w: email must look like user@domain.com", domain.ErrValidation)
	}
	return nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
