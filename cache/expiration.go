// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cache

import (
	"encoding/json"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/yumvi-pay/remitd/storage"
)

const expirationCheckInterval = 5 * time.Minute

// Cleaner - background process that trims aged API cache envelopes
//
// only the API cache pool is swept: offline envelopes are kept until
// a successful fetch replaces them, however stale, since they may be
// the only copy of the data the device has
type Cleaner struct {
	log       *logger.L
	pool      *storage.PoolHandle
	retention time.Duration
}

// NewCleaner - create the cleaner for the API cache pool
func NewCleaner(retention time.Duration) *Cleaner {
	return &Cleaner{
		log:       logger.New("cache-cleaner"),
		pool:      storage.Pool.APICache,
		retention: retention,
	}
}

// Run - background process loop
func (c *Cleaner) Run(args interface{}, shutdown <-chan struct{}) {
	ticker := time.NewTicker(expirationCheckInterval)
loop:
	for {
		select {
		case <-ticker.C:
			c.Sweep()
		case <-shutdown:
			ticker.Stop()
			break loop
		}
	}
}

// Sweep - one cleaning pass
//
// also persists the hit/miss totals so the status command can report
// them from outside the daemon process
func (c *Cleaner) Sweep() {
	n := c.deleteExpiredItems()
	if n > 0 {
		c.log.Infof("removed %d expired entries", n)
	}
	WriteStatistics()
	c.log.Debugf("cache totals: %d hits, %d misses",
		HitCounter.Uint64(), MissCounter.Uint64())
}

func (c *Cleaner) deleteExpiredItems() int {
	expired := []string{}
	c.pool.Iterate(func(key string, value []byte) bool {
		var envelope Envelope
		if err := json.Unmarshal(value, &envelope); nil != err {
			// unreadable entries are dead weight, reap them too
			expired = append(expired, key)
			return true
		}
		if envelope.Expired(c.retention) {
			expired = append(expired, key)
		}
		return true
	})
	for _, key := range expired {
		c.pool.Delete(key)
	}
	return len(expired)
}
