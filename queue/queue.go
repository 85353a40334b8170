// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package queue - the durable offline request queue
//
// mutating calls made while offline are recorded here and replayed,
// oldest first, when connectivity returns.  The log lives in the
// Queue storage pool, so queued mutations survive a restart; entries
// are keyed by a zero-padded sequence number to make storage key
// order the replay order.
package queue

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/yumvi-pay/remitd/counter"
	"github.com/yumvi-pay/remitd/fault"
	"github.com/yumvi-pay/remitd/storage"
)

// Request - one recorded mutating call
type Request struct {
	Sequence   uint64            `json:"sequence"`
	Method     string            `json:"method"`
	URL        string            `json:"url"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       json.RawMessage   `json:"body,omitempty"`
	EnqueuedAt int64             `json:"enqueuedAt"` // epoch milliseconds
}

// ReplayFunc - invoked for each queued request during a drain
type ReplayFunc func(request Request) error

// Queue - handle to the persisted log
type Queue struct {
	sync.Mutex
	log      *logger.L
	pool     *storage.PoolHandle
	sequence counter.Counter

	// statistics
	ReplayedCounter counter.Counter
	DroppedCounter  counter.Counter
}

// New - open the queue over the Queue storage pool
//
// the sequence counter resumes after the highest persisted entry so
// new additions sort behind recovered ones
func New() *Queue {
	q := &Queue{
		log:  logger.New("queue"),
		pool: storage.Pool.Queue,
	}

	last := uint64(0)
	q.pool.Iterate(func(key string, value []byte) bool {
		if n, err := strconv.ParseUint(key, 10, 64); nil == err && n > last {
			last = n
		}
		return true
	})
	for q.sequence.Uint64() < last {
		q.sequence.Increment()
	}

	if last > 0 {
		q.log.Infof("recovered %d queued requests", q.pool.Count())
	}
	return q
}

// Add - append a request to the log
func (q *Queue) Add(method string, url string, headers map[string]string, body json.RawMessage) Request {
	q.Lock()
	defer q.Unlock()

	request := Request{
		Sequence:   q.sequence.Increment(),
		Method:     method,
		URL:        url,
		Headers:    headers,
		Body:       body,
		EnqueuedAt: time.Now().UnixNano() / int64(time.Millisecond),
	}

	buffer, _ := json.Marshal(request)
	q.pool.Put(sequenceKey(request.Sequence), buffer)

	q.log.Infof("queued: %s %s (sequence %d)", method, url, request.Sequence)
	return request
}

// Pending - all queued requests in replay order
func (q *Queue) Pending() []Request {
	requests := []Request{}
	q.pool.Iterate(func(key string, value []byte) bool {
		var request Request
		if err := json.Unmarshal(value, &request); nil != err {
			q.log.Errorf("unreadable queue entry %q dropped: %s", key, err)
			return true
		}
		requests = append(requests, request)
		return true
	})
	return requests
}

// Depth - number of queued requests
func (q *Queue) Depth() int {
	return q.pool.Count()
}

// Drain - replay the log oldest first
//
// every entry is invoked exactly once; an entry that fails is logged
// and removed so it cannot block later entries.  The one exception is
// a connection-classified failure: that means connectivity was lost
// again, so the drain stops and the entry is retained for the next
// drain.
func (q *Queue) Drain(replay ReplayFunc) (replayed int, dropped int) {
	q.Lock()
	defer q.Unlock()

	for _, request := range q.Pending() {
		err := replay(request)
		if nil != err && fault.IsErrConnection(err) {
			q.log.Warnf("drain interrupted at sequence %d: %s", request.Sequence, err)
			break
		}

		q.pool.Delete(sequenceKey(request.Sequence))

		if nil == err {
			replayed += 1
			q.ReplayedCounter.Increment()
		} else {
			dropped += 1
			q.DroppedCounter.Increment()
			q.log.Errorf("replay failed, request dropped: %s %s: %s", request.Method, request.URL, err)
		}
	}

	q.writeStatistics()
	return replayed, dropped
}

// Clear - discard the whole log
func (q *Queue) Clear() {
	q.Lock()
	defer q.Unlock()
	q.pool.Clear()
}

func sequenceKey(sequence uint64) string {
	return fmt.Sprintf("%016d", sequence)
}
