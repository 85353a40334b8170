// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package queue

import (
	"context"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/yumvi-pay/remitd/connectivity"
)

// replay no faster than this, the backend has its own rate limits
const (
	replayRatePerSecond = 5
	replayBurst         = 1
)

// Drainer - background process that replays the queue whenever
// connectivity returns
type Drainer struct {
	log     *logger.L
	queue   *Queue
	conn    *connectivity.State
	replay  ReplayFunc
	limiter *rate.Limiter
}

// NewDrainer - create the drainer
func NewDrainer(q *Queue, conn *connectivity.State, replay ReplayFunc) *Drainer {
	return &Drainer{
		log:     logger.New("drainer"),
		queue:   q,
		conn:    conn,
		replay:  replay,
		limiter: rate.NewLimiter(rate.Limit(replayRatePerSecond), replayBurst),
	}
}

// Run - background process loop
func (d *Drainer) Run(args interface{}, shutdown <-chan struct{}) {

	changes := d.conn.Subscribe()

	// connectivity may already be up with recovered entries waiting
	if !d.conn.IsOffline() {
		d.drain()
	}

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case mode := <-changes:
			if connectivity.Online == mode {
				d.drain()
			}
		}
	}
}

func (d *Drainer) drain() {
	if 0 == d.queue.Depth() {
		return
	}

	replayed, dropped := d.queue.Drain(func(request Request) error {
		_ = d.limiter.Wait(context.Background())
		return d.replay(request)
	})
	d.log.Infof("drain complete: %d replayed, %d dropped, %d retained",
		replayed, dropped, d.queue.Depth())
}
