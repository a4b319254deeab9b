// Package accounts manages local operating-system user accounts.
package accounts

import "context"

// Account is a snapshot of one regular user account.
type Account struct {
	Username string
	FullName string
	Locked   bool
}

// Directory is the set of account operations the UI depends on. Every
// operation needs elevated privileges; a nil error means it succeeded.
type Directory interface {
	// List returns the regular user accounts in enumeration order.
	List(ctx context.Context) ([]Account, error)

	// Create adds an account with a home directory, then sets its password.
	Create(ctx context.Context, username, fullName, password string) error

	// Delete removes the account and its home directory.
	Delete(ctx context.Context, username string) error

	Lock(ctx context.Context, username string) error
	Unlock(ctx context.Context, username string) error
}
