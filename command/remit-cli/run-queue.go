// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli"

	"github.com/yumvi-pay/remitd/queue"
)

func runQueue(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	teardown, err := openStores(m)
	if nil != err {
		return err
	}
	defer teardown()

	pending := queue.New().Pending()
	if 0 == len(pending) {
		fmt.Fprintln(m.w, "queue is empty")
		return nil
	}

	for _, request := range pending {
		enqueued := time.Unix(0, request.EnqueuedAt*int64(time.Millisecond)).UTC()
		fmt.Fprintf(m.w, "%16d  %-6s %-50s  enqueued: %s\n",
			request.Sequence, request.Method, request.URL, enqueued.Format(time.RFC3339))
		if m.verbose && nil != request.Body {
			_ = printJson(m.w, request.Body)
		}
	}
	return nil
}
