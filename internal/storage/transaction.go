package storage

import (
	"context"
	"sync"

	"gorm.io/gorm"
)

type afterCommitKey struct{}

type afterCommitHooks struct {
	mu    sync.Mutex
	hooks []func()
}

// Transaction runs fn in a database transaction. Hooks registered with
// AfterCommit run once the transaction has committed and are dropped on
// rollback.
func Transaction(fn func(tx *gorm.DB) error) error {
	hooks := &afterCommitHooks{}
	ctx := context.WithValue(context.Background(), afterCommitKey{}, hooks)

	if err := GetDb().WithContext(ctx).Transaction(fn); err != nil {
		return err
	}

	hooks.mu.Lock()
	pending := hooks.hooks
	hooks.hooks = nil
	hooks.mu.Unlock()

	for _, hook := range pending {
		hook()
	}

	return nil
}

// AfterCommit defers hook until the transaction started by Transaction
// commits. A tx without such a transaction runs the hook right away.
func AfterCommit(tx *gorm.DB, hook func()) {
	if tx != nil && tx.Statement != nil && tx.Statement.Context != nil {
		hooks, ok := tx.Statement.Context.Value(afterCommitKey{}).(*afterCommitHooks)
		if ok {
			hooks.mu.Lock()
			hooks.hooks = append(hooks.hooks, hook)
			hooks.mu.Unlock()
			return
		}
	}

	hook()
}
