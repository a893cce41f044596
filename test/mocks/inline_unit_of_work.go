// test/mocks/inline_unit_of_work.go
package mocks

import (
	"context"

	"github.com/ammerola/stock-ledger/internal/core/ports"
)

// InlineUnitOfWork runs fn directly against fixed repositories. It counts
// executions and remembers the last error fn returned, standing in for a
// real transaction in service tests.
type InlineUnitOfWork struct {
	Repos      ports.TxRepositories
	Executions int
	LastErr    error
}

var _ ports.UnitOfWork = (*InlineUnitOfWork)(nil)

// NewInlineUnitOfWork creates a unit of work bound to repos
func NewInlineUnitOfWork(repos ports.TxRepositories) *InlineUnitOfWork {
	return &InlineUnitOfWork{Repos: repos}
}

// Execute calls fn with the bound repositories
func (u *InlineUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, repos ports.TxRepositories) error) error {
	u.Executions++
	u.LastErr = fn(ctx, u.Repos)
	return u.LastErr
}
