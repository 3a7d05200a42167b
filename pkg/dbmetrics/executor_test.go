package dbmetrics

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubTx struct {
	DBExecutor
}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

type stubDB struct {
	DBExecutor
}

func TestGetExecutor(t *testing.T) {
	db := &stubDB{}
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db).(*stubDB))

	tx := &stubTx{}
	txCtx := WithTx(ctx, tx)

	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db).(*stubTx))
}

func TestWrap_NilCollector(t *testing.T) {
	wrapped := Wrap(&sql.DB{}, nil)
	assert.NotPanics(t, func() {
		wrapped.observe("exec", time.Now())
	})
}
