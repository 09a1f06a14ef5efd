package output

import "context"

// SecretsPort reads named secrets from a hosted notebook secrets store.
type SecretsPort interface {
	GetSecret(ctx context.Context, label string) (string, error)
}
