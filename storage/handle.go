// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/logger"
)

// PoolHandle - scoped access to one key prefix of the backing store
type PoolHandle struct {
	prefix string
	store  KeyValueStore
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key string) []byte {
	prefixedKey := make([]byte, 0, len(p.prefix)+len(key))
	prefixedKey = append(prefixedKey, p.prefix...)
	return append(prefixedKey, key...)
}

// Prefix - the pool key prefix, for diagnostics
func (p *PoolHandle) Prefix() string {
	return p.prefix
}

// Put - store a key/value pair in the pool
func (p *PoolHandle) Put(key string, value []byte) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.store {
		logger.Panic("pool.Put nil store")
		return
	}
	err := p.store.Put(p.prefixKey(key), value)
	logger.PanicIfError("pool.Put", err)
}

// Delete - remove a key from the pool
func (p *PoolHandle) Delete(key string) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.store {
		return
	}
	err := p.store.Delete(p.prefixKey(key))
	logger.PanicIfError("pool.Delete", err)
}

// Get - read a value for a given key
//
// a missing key and a backend read failure both return nil: reads
// from local storage are soft misses by contract, never errors
func (p *PoolHandle) Get(key string) []byte {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.store {
		return nil
	}
	value, err := p.store.Get(p.prefixKey(key))
	if nil != err {
		return nil
	}
	return value
}

// Has - check if a key exists
func (p *PoolHandle) Has(key string) bool {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.store {
		return false
	}
	found, err := p.store.Has(p.prefixKey(key))
	if nil != err {
		return false
	}
	return found
}

// Iterate - walk all pool entries in ascending key order
//
// the callback receives the key with the pool prefix stripped;
// returning false stops the walk
func (p *PoolHandle) Iterate(fn func(key string, value []byte) bool) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.store {
		return
	}
	elements, err := p.store.Scan([]byte(p.prefix))
	if nil != err {
		logger.Panicf("pool.Iterate: scan error: %s", err)
		return
	}
	for _, e := range elements {
		if !fn(string(e.Key[len(p.prefix):]), e.Value) {
			break
		}
	}
}

// Count - number of entries in the pool
func (p *PoolHandle) Count() int {
	n := 0
	p.Iterate(func(key string, value []byte) bool {
		n += 1
		return true
	})
	return n
}

// Clear - delete every entry in the pool
func (p *PoolHandle) Clear() {
	keys := []string{}
	p.Iterate(func(key string, value []byte) bool {
		keys = append(keys, key)
		return true
	})
	for _, key := range keys {
		p.Delete(key)
	}
}
