package store

import "context"

// RunForParticipant scopes ctx to a participant and calls fn inside the provided TxRunner
func RunForParticipant(
	ctx context.Context,
	tx TxRunner,
	participantID string,
	fn func(ctx context.Context, q RowQuerier) error,
) error {
	ctx = WithParticipant(ctx, participantID)
	return tx.Tx(ctx, func(q RowQuerier) error {
		return fn(ctx, q)
	})
}
