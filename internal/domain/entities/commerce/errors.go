package commerce

import "errors"

// Deterministic, caller-inspectable domain outcomes. These are branches, not
// failures: callers check membership and react, nothing is retried or logged
// as an error on their account.
var (
	ErrAlreadyExists = errors.New("record already exists")
	ErrNotFound      = errors.New("record not found")
)
