package db

import (
	"fmt"
	"log"
	"sync"

	"github.com/dgraph-io/ristretto"
)

// Storing cache keys in concurrent data structures to allow for clearing all
// cached balances for an account in one sweep (e.g. when a category is
// deleted and its transactions go uncategorized).
var (
	Cache            *ristretto.Cache
	BalanceCacheKeys = struct {
		sync.RWMutex
		m map[string]struct{}
	}{m: make(map[string]struct{})}
)

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

func BalanceCacheKey(accountID, categoryID int64) string {
	return fmt.Sprintf("balance:%d:%d", accountID, categoryID)
}

func SetBalanceCache(cacheKey string, value interface{}) {
	BalanceCacheKeys.Lock()
	BalanceCacheKeys.m[cacheKey] = struct{}{}
	BalanceCacheKeys.Unlock()
	Cache.Set(cacheKey, value, 1)
}

func DelBalanceCache(cacheKey string) {
	BalanceCacheKeys.Lock()
	delete(BalanceCacheKeys.m, cacheKey)
	BalanceCacheKeys.Unlock()
	Cache.Del(cacheKey)
}

func ClearAllBalanceCaches() {
	BalanceCacheKeys.Lock()
	for key := range BalanceCacheKeys.m {
		Cache.Del(key)
	}
	BalanceCacheKeys.m = make(map[string]struct{})
	BalanceCacheKeys.Unlock()
}
