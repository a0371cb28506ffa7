package sessions

import (
	"sync"

	"picktask-backend/internal/cache"
)

var (
	sessionStore     *SessionStore
	sessionStoreOnce sync.Once
)

func GetSessionStore() *SessionStore {
	sessionStoreOnce.Do(func() {
		sessionStore = NewSessionStore(cache.GetClient())
	})

	return sessionStore
}
