// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cache

import (
	"encoding/json"

	"github.com/yumvi-pay/remitd/storage"
)

const statisticsKey = "cache"

// Statistics - hit/miss totals since the serving process started
//
// the counters live in the serving process; they are persisted to the
// stats pool so a separate process, such as the status command, can
// read them back
type Statistics struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
}

// WriteStatistics - persist the current counter totals
func WriteStatistics() {
	buffer, _ := json.Marshal(Statistics{
		Hits:   HitCounter.Uint64(),
		Misses: MissCounter.Uint64(),
	})
	storage.Pool.Stats.Put(statisticsKey, buffer)
}

// ReadStatistics - the last persisted totals, zero if none
func ReadStatistics() Statistics {
	var statistics Statistics
	if buffer := storage.Pool.Stats.Get(statisticsKey); nil != buffer {
		_ = json.Unmarshal(buffer, &statistics)
	}
	return statistics
}
