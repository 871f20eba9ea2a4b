package loops

import "context"

// Service sends email through Loops
type Service interface {
	// UpsertContact creates or updates a contact keyed by the user ID
	UpsertContact(ctx context.Context, contact *Contact) error

	// SendTransactional sends a templated transactional email
	SendTransactional(ctx context.Context, email *TransactionalEmail) error
}

// Contact is a mailing list contact
type Contact struct {
	Email      string `json:"email"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Subscribed bool   `json:"subscribed"`
	UserID     string `json:"userId"`
}

// TransactionalEmail is one templated message
type TransactionalEmail struct {
	TransactionalID string            `json:"transactionalId"`
	Email           string            `json:"email"`
	DataVariables   map[string]string `json:"dataVariables,omitempty"`
}
