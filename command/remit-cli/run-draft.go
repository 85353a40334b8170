// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/yumvi-pay/remitd/draft"
	"github.com/yumvi-pay/remitd/fault"
)

func runDraft(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	teardown, err := openStores(m)
	if nil != err {
		return err
	}
	defer teardown()

	d, err := draft.NewStore().Load()
	if fault.ErrDraftNotFound == err {
		fmt.Fprintln(m.w, "no draft in progress")
		return nil
	}
	if nil != err {
		return err
	}

	return printJson(m.w, d)
}
