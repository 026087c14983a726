package repository

import "context"

// TxManager runs a function inside a database transaction. The transactional
// handle travels in the context, so repository calls made with the derived
// context join the same transaction; either all writes land or none do.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
