package customer

import (
	"strings"

	"courtbook/internal/pkg/errs"

	"github.com/google/uuid"
)

// Name is the case-sensitive identity pair of a customer. No two customers
// share the same pair.
type Name struct {
	firstName string
	lastName  string
}

func NewName(firstName, lastName string) (Name, error) {
	first := strings.TrimSpace(firstName)
	last := strings.TrimSpace(lastName)
	if first == "" || last == "" {
		return Name{}, errs.ErrEmptyCustomerName
	}
	return Name{firstName: first, lastName: last}, nil
}

func (n Name) FirstName() string { return n.firstName }
func (n Name) LastName() string  { return n.lastName }

func (n Name) Full() string {
	return n.firstName + " " + n.lastName
}

type Customer struct {
	id   uuid.UUID
	name Name
}

func NewCustomer(name Name) *Customer {
	return &Customer{
		id:   uuid.New(),
		name: name,
	}
}

func ReconstructCustomer(id uuid.UUID, name Name) *Customer {
	return &Customer{
		id:   id,
		name: name,
	}
}

func (c *Customer) ID() uuid.UUID { return c.id }
func (c *Customer) Name() Name    { return c.name }
