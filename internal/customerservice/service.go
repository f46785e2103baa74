// Package customerservice manages business logic layer of customers.
package customerservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/go-lend/lendbank/internal/domain"
	"github.com/go-lend/lendbank/pkg/errorspkg"
	"github.com/go-lend/lendbank/pkg/passpkg"
)

// Repo provides data access layer interface needed by customer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package customerservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateCustomerParams) (domain.Customer, error)
	Get(ctx context.Context, id int32) (domain.Customer, error)
}

// Service facilitates customer service layer logic.
type Service struct {
	repo Repo
}

// New returns customer service struct to manage customer bussines logic.
func New(cr Repo) *Service {
	return &Service{
		repo: cr,
	}
}

// Create hashes the given password, creates the customer and returns it.
func (s *Service) Create(ctx context.Context, firstName, lastName, email, phoneNumber, password string) (domain.Customer, error) {
	l := zerolog.Ctx(ctx)

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Customer{}, errorspkg.ErrInternal
	}

	arg := domain.CreateCustomerParams{
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		PhoneNumber:    phoneNumber,
		HashedPassword: hashedPassword,
	}

	customer, err := s.repo.Create(ctx, arg)
	if err != nil {
		return domain.Customer{}, err
	}

	return customer, nil
}

// Get returns the customer with the given id.
func (s *Service) Get(ctx context.Context, id int32) (domain.Customer, error) {
	customer, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Customer{}, err
	}

	return customer, nil
}
