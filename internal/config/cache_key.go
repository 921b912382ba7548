package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// DispatchRateKey returns the counter key for a client's dispatches in one window.
func (r *CacheKeyStruct) DispatchRateKey(client string, window int64) string {
	return fmt.Sprintf("ratelimit:dispatch:%s:%d", client, window)
}

var CacheKey = NewCacheKeyStruct()
