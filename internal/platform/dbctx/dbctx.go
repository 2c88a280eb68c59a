package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context bundles a request context with an optional GORM transaction.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// Savepoint runs fn inside a nested transaction of c.Tx so a failure rolls
// back only fn's writes and leaves the outer transaction usable. Without an
// open transaction fn runs directly against c.
func (c Context) Savepoint(fn func(Context) error) error {
	if c.Tx == nil {
		return fn(c)
	}
	return c.Tx.WithContext(c.Ctx).Transaction(func(sp *gorm.DB) error {
		return fn(Context{Ctx: c.Ctx, Tx: sp})
	})
}
