// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"

	"github.com/yumvi-pay/remitd/cache"
	"github.com/yumvi-pay/remitd/storage"
)

func runCache(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	teardown, err := openStores(m)
	if nil != err {
		return err
	}
	defer teardown()

	includeData := c.Bool("data")

	storage.Pool.APICache.Iterate(func(key string, value []byte) bool {
		var envelope cache.Envelope
		if err := json.Unmarshal(value, &envelope); nil != err {
			fmt.Fprintf(m.w, "?? %-60s  unreadable: %s\n", key, err)
			return true
		}
		fmt.Fprintf(m.w, "   %-60s  age: %s\n", key, envelope.Age().Round(time.Second))
		if includeData {
			_ = printJson(m.w, envelope.Data)
		}
		return true
	})

	return nil
}

func runClearCache(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	teardown, err := openStores(m)
	if nil != err {
		return err
	}
	defer teardown()

	cached := storage.Pool.APICache.Count()
	offline := storage.Pool.Offline.Count()

	var g errgroup.Group
	g.Go(func() error {
		cache.Clear(storage.Pool.APICache)
		return nil
	})
	g.Go(func() error {
		cache.Clear(storage.Pool.Offline)
		return nil
	})
	if err := g.Wait(); nil != err {
		return err
	}

	fmt.Fprintf(m.w, "cleared %d cached and %d offline entries\n", cached, offline)
	return nil
}
