// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package queue

import (
	"encoding/json"

	"github.com/yumvi-pay/remitd/storage"
)

const statisticsKey = "queue"

// Statistics - replay totals since the serving process started
//
// persisted after every drain so the status command can report them
// from outside the daemon process
type Statistics struct {
	Replayed uint64 `json:"replayed"`
	Dropped  uint64 `json:"dropped"`
}

func (q *Queue) writeStatistics() {
	buffer, _ := json.Marshal(Statistics{
		Replayed: q.ReplayedCounter.Uint64(),
		Dropped:  q.DroppedCounter.Uint64(),
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
