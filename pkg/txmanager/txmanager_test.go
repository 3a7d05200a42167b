package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarWashService/pkg/pgerrors"
)

type fakeTx struct {
	dbmetrics.DBExecutor
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx    *fakeTx
	opts  *sql.TxOptions
	calls int
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.calls++
	b.opts = opts
	return b.tx, nil
}

func TestManager_DoSerializable_Commits(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	mgr := NewTransactionManager(beginner)

	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, beginner.tx.committed)
	assert.False(t, beginner.tx.rolledBack)
	assert.Equal(t, sql.LevelSerializable, beginner.opts.Isolation)
}

func TestManager_Do_RollsBackOnError(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	mgr := NewTransactionManager(beginner)
	boom := errors.New("boom")

	err := mgr.Do(context.Background(), func(ctx context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.True(t, beginner.tx.rolledBack)
	assert.False(t, beginner.tx.committed)
}

func TestManager_NestedCallReusesTransaction(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	mgr := NewTransactionManager(beginner)

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return mgr.DoSerializable(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Equal(t, 1, beginner.calls)
}

func TestManager_CommitSerializationFailure(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{commitErr: &pq.Error{Code: pgerrors.CodeSerializationFailure}}}
	mgr := NewTransactionManager(beginner)

	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrCommitTx)
	assert.True(t, pgerrors.IsSerializationFailure(err))
}
