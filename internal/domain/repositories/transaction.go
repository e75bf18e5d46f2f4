package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager groups repository calls so they commit or fail together
type TransactionManager interface {
	// ExecTx executes fn within a transaction. Repository calls made with the
	// context passed to fn take part in it.
	ExecTx(ctx context.Context, fn TxFn) error
}

// NoTx runs fn directly, for backends without multi-statement transactions
type NoTx struct{}

// ExecTx calls fn with ctx unchanged
func (NoTx) ExecTx(ctx context.Context, fn TxFn) error {
	return fn(ctx)
}
