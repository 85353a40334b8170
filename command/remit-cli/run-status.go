// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/yumvi-pay/remitd/cache"
	"github.com/yumvi-pay/remitd/draft"
	"github.com/yumvi-pay/remitd/queue"
	"github.com/yumvi-pay/remitd/storage"
)

func runStatus(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	teardown, err := openStores(m)
	if nil != err {
		return err
	}
	defer teardown()

	// totals persisted by the daemon; zero when it has not run yet
	cacheStats := cache.ReadStatistics()
	queueStats := queue.ReadStatistics()

	status := struct {
		Platform         string `json:"platform"`
		CachedEntries    int    `json:"cachedEntries"`
		OfflineEntries   int    `json:"offlineEntries"`
		Transactions     int    `json:"transactions"`
		QueuedRequests   int    `json:"queuedRequests"`
		CacheHits        uint64 `json:"cacheHits"`
		CacheMisses      uint64 `json:"cacheMisses"`
		ReplayedRequests uint64 `json:"replayedRequests"`
		DroppedRequests  uint64 `json:"droppedRequests"`
		DraftStep        string `json:"draftStep,omitempty"`
		DraftRevision    uint64 `json:"draftRevision,omitempty"`
	}{
		Platform:         m.config.Platform,
		CachedEntries:    storage.Pool.APICache.Count(),
		OfflineEntries:   storage.Pool.Offline.Count(),
		Transactions:     storage.Pool.Transactions.Count(),
		QueuedRequests:   queue.New().Depth(),
		CacheHits:        cacheStats.Hits,
		CacheMisses:      cacheStats.Misses,
		ReplayedRequests: queueStats.Replayed,
		DroppedRequests:  queueStats.Dropped,
	}

	if d, err := draft.NewStore().Load(); nil == err {
		status.DraftStep = d.Step
		status.DraftRevision = d.Revision
	}

	return printJson(m.w, status)
}
