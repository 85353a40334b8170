// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cache

import (
	"encoding/json"
	"time"

	"github.com/yumvi-pay/remitd/counter"
	"github.com/yumvi-pay/remitd/storage"
)

// Envelope - the stored form of every cached value
type Envelope struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"` // epoch milliseconds
}

// hit/miss statistics, read back by the status commands
var (
	HitCounter  counter.Counter
	MissCounter counter.Counter
)

// Age - time since the envelope was written
func (e *Envelope) Age() time.Duration {
	return time.Duration(milliseconds()-e.Timestamp) * time.Millisecond
}

// Expired - strict TTL check against the write timestamp
func (e *Envelope) Expired(ttl time.Duration) bool {
	return e.Age() > ttl
}

// Put - wrap data in a fresh envelope and store it
//
// the envelope is replaced wholesale; the previous timestamp is gone
func Put(pool *storage.PoolHandle, key string, data json.RawMessage) {
	envelope := Envelope{
		Data:      data,
		Timestamp: milliseconds(),
	}
	// marshalling a raw message cannot fail
	buffer, _ := json.Marshal(envelope)
	pool.Put(key, buffer)
}

// Get - read an envelope back
//
// missing or corrupt entries are both a miss: a parse failure is
// swallowed, never surfaced
func Get(pool *storage.PoolHandle, key string) (*Envelope, bool) {
	buffer := pool.Get(key)
	if nil == buffer {
		MissCounter.Increment()
		return nil, false
	}

	var envelope Envelope
	if err := json.Unmarshal(buffer, &envelope); nil != err {
		MissCounter.Increment()
		return nil, false
	}

	HitCounter.Increment()
	return &envelope, true
}

// Delete - remove one entry
func Delete(pool *storage.PoolHandle, key string) {
	pool.Delete(key)
}

// Clear - remove every entry in the pool
func Clear(pool *storage.PoolHandle) {
	pool.Clear()
}

func milliseconds() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}
