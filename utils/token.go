package utils

import (
	"sync"
	"time"
)

// revoked token ids mapped to the moment they would have expired anyway
var (
	revokedTokens = make(map[string]time.Time)
	revokedMutex  sync.RWMutex
)

func RevokeToken(tokenID string, expiresAt time.Time) {
	if tokenID == "" {
		return
	}
	revokedMutex.Lock()
	defer revokedMutex.Unlock()
	revokedTokens[tokenID] = expiresAt
	pruneRevokedLocked(time.Now())
}

func IsTokenRevoked(tokenID string) bool {
	revokedMutex.RLock()
	expiry, exists := revokedTokens[tokenID]
	revokedMutex.RUnlock()
	return exists && time.Now().Before(expiry)
}

func pruneRevokedLocked(now time.Time) {
	for id, expiry := range revokedTokens {
		if now.After(expiry) {
			delete(revokedTokens, id)
		}
	}
}
