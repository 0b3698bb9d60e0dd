package usecase

import (
	"context"

	"cms_backend/internal/feature/customer/domain/entity"
)

// CustomerRepository abstracts the persistence layer for customer entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type CustomerRepository interface {
	// Create persists a new customer. It returns ErrEmailAlreadyExists when
	// the email is already taken; the write is atomic either way.
	Create(ctx context.Context, c *entity.Customer) error

	// AuthenticateByHash returns the single customer matching both email and
	// password hash exactly, or ErrCustomerNotFound.
	AuthenticateByHash(ctx context.Context, email, passwordHash string) (*entity.Customer, error)

	// UpdatePasswordHash replaces the stored hash for the given email.
	// It reports whether a matching row existed.
	UpdatePasswordHash(ctx context.Context, email, newHash string) (bool, error)

	// UpdateProfile updates the non-email profile fields for the given email.
	// It reports whether a matching row existed.
	UpdateProfile(ctx context.Context, email, firstName, lastName, phone string) (bool, error)

	// GetByEmail retrieves a customer by email, or ErrCustomerNotFound.
	GetByEmail(ctx context.Context, email string) (*entity.Customer, error)

	// GetByID retrieves a customer by ID, or ErrCustomerNotFound.
	GetByID(ctx context.Context, id uint) (*entity.Customer, error)

	// EmailExists reports whether a customer with the given email exists.
	EmailExists(ctx context.Context, email string) (bool, error)

	// ListAll returns every customer, newest-created first.
	ListAll(ctx context.Context) ([]entity.Customer, error)

	// Search returns customers whose first name, last name or email contains
	// the term as a case-insensitive substring, in ListAll order.
	Search(ctx context.Context, term string) ([]entity.Customer, error)

	// Count returns the total number of customers.
	Count(ctx context.Context) (int64, error)

	// CountCreatedWithin returns the number of customers created in the last
	// N days.
	CountCreatedWithin(ctx context.Context, days int) (int64, error)

	// CountCreatedToday returns the number of customers created since local
	// midnight.
	CountCreatedToday(ctx context.Context) (int64, error)

	// RecentActivity returns the most recently created customers, newest
	// first, bounded to limit.
	RecentActivity(ctx context.Context, limit int) ([]entity.Customer, error)

	// Delete removes a customer by ID. It reports whether a row existed.
	Delete(ctx context.Context, id uint) (bool, error)
}
