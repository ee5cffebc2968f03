// Package service contains the application use cases. Each use case depends
// on domain repository interfaces only.
package service

import "context"

// ApplicationService runs one use case with input T and result R.
type ApplicationService[T, R any] interface {
	Execute(ctx context.Context, data T) (R, error)
}
