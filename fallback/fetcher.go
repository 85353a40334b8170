// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fallback - offline-aware data fetching
//
// wraps a caller-supplied fetch function and decides between live
// network data, a cached envelope and caller-supplied mock data,
// depending on connectivity and the caller's offline preference
package fallback

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/bitmark-inc/logger"
	"golang.org/x/sync/singleflight"

	"github.com/yumvi-pay/remitd/cache"
	"github.com/yumvi-pay/remitd/connectivity"
	"github.com/yumvi-pay/remitd/fault"
	"github.com/yumvi-pay/remitd/storage"
)

// FetchFunc - the caller's live fetch
type FetchFunc func(ctx context.Context) (json.RawMessage, error)

// Result - the resolved data and where it came from
//
// Err is set when the live fetch failed even if cached or mock data
// was substituted, so the caller can both render and report
type Result struct {
	Data      json.RawMessage
	FromCache bool
	UsingMock bool
	Err       error
}

// Fetcher - offline fallback fetcher over one cache pool
type Fetcher struct {
	log     *logger.L
	conn    *connectivity.State
	pool    *storage.PoolHandle
	group   singleflight.Group
	refresh sync.WaitGroup
}

// NewFetcher - create a fetcher bound to a connectivity state and pool
func NewFetcher(conn *connectivity.State, pool *storage.PoolHandle) *Fetcher {
	return &Fetcher{
		log:  logger.New("fallback"),
		conn: conn,
		pool: pool,
	}
}

// Fetch - resolve data for a key
//
// order of precedence:
//  1. cached data when offline or when the caller prefers offline,
//     with a fire-and-forget refresh if actually online
//  2. mock data when offline with no cache; the mock is persisted so
//     the next offline read is a cache hit, not a re-derivation
//  3. live fetch, falling back to cache then mock on failure; the
//     fallback copy is re-written to cache in both cases
func (f *Fetcher) Fetch(ctx context.Context, key string, preferOffline bool, fn FetchFunc, mock json.RawMessage) Result {

	envelope, cached := cache.Get(f.pool, key)
	offline := f.conn.IsOffline()

	if cached && (preferOffline || offline) {
		if !offline {
			f.backgroundRefresh(key, fn)
		}
		return Result{Data: envelope.Data, FromCache: true}
	}

	if offline {
		// no cache: serve and persist the mock so repeated offline
		// reads are idempotent; a later live fetch replaces it
		cache.Put(f.pool, key, mock)
		return Result{Data: mock, UsingMock: true}
	}

	data, err := fn(ctx)
	if nil == err {
		cache.Put(f.pool, key, data)
		return Result{Data: data}
	}

	f.log.Warnf("live fetch failed for %q: %s", key, err)

	if cached {
		cache.Put(f.pool, key, envelope.Data)
		return Result{Data: envelope.Data, FromCache: true, Err: err}
	}

	cache.Put(f.pool, key, mock)
	return Result{Data: mock, UsingMock: true, Err: err}
}

// Refresh - force a live fetch and cache replace
//
// only effective while online
func (f *Fetcher) Refresh(ctx context.Context, key string, fn FetchFunc) error {
	if f.conn.IsOffline() {
		return fault.ErrNoConnection
	}

	data, err, _ := f.group.Do(key, func() (interface{}, error) {
		return fn(ctx)
	})
	if nil != err {
		return err
	}
	cache.Put(f.pool, key, data.(json.RawMessage))
	return nil
}

// Clear - drop the cached entry for a key
//
// only effective while online: offline, the cached copy may be the
// only data the device has
func (f *Fetcher) Clear(key string) {
	if f.conn.IsOffline() {
		return
	}
	cache.Delete(f.pool, key)
}

// Wait - block until in-flight background refreshes settle
func (f *Fetcher) Wait() {
	f.refresh.Wait()
}

// fire-and-forget refresh, deduplicated per key so a burst of
// cache-first reads causes one upstream call
func (f *Fetcher) backgroundRefresh(key string, fn FetchFunc) {
	f.refresh.Add(1)
	go func() {
		defer f.refresh.Done()

		data, err, _ := f.group.Do(key, func() (interface{}, error) {
			return fn(context.Background())
		})
		if nil != err {
			f.log.Warnf("background refresh failed for %q: %s", key, err)
			return
		}
		cache.Put(f.pool, key, data.(json.RawMessage))
	}()
}
