package dedupe

import "context"

// Store remembers which queue messages already produced a confirmation.
// Claim returns true the first time a message id is seen.
type Store interface {
	Claim(ctx context.Context, messageID, orderID string) (bool, error)
}
