package repositories

import "context"

// TxManager runs a unit of work inside a single database transaction.
// The transaction travels in the context handed to fn; repository calls made with
// that context join it. A nested WithinTx joins the outer transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
