package ports

import "context"

// Transactor runs fn inside a single atomic transaction. Repository calls
// made with the ctx passed to fn join that transaction, so a logical
// operation (for example a user update plus its role reconciliation) commits
// or rolls back as one unit.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
