package db

import (
	"log"
	"sync"

	"github.com/dgraph-io/ristretto"
)

// Cache keys are tracked alongside the cache itself so all entries for a
// resource kind can be cleared when that resource changes.
var (
	Cache                *ristretto.Cache
	AccountTypeCacheKeys = struct {
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

func SetAccountTypeCache(cacheKey string, value interface{}) {
	if Cache == nil {
		return
	}
	AccountTypeCacheKeys.Lock()
	AccountTypeCacheKeys.m[cacheKey] = struct{}{}
	AccountTypeCacheKeys.Unlock()
	Cache.Set(cacheKey, value, 1)
}

func GetAccountTypeCache(cacheKey string) (interface{}, bool) {
	if Cache == nil {
		return nil, false
	}
	return Cache.Get(cacheKey)
}

func ClearAllAccountTypeCaches() {
	if Cache == nil {
		return
	}
	AccountTypeCacheKeys.Lock()
	for key := range AccountTypeCacheKeys.m {
		Cache.Del(key)
	}
	AccountTypeCacheKeys.m = make(map[string]struct{})
	AccountTypeCacheKeys.Unlock()
}
