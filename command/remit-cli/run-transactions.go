// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli"

	"github.com/yumvi-pay/remitd/transaction"
)

func runTransactions(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	teardown, err := openStores(m)
	if nil != err {
		return err
	}
	defer teardown()

	list := transaction.NewStore().List()
	if 0 == len(list) {
		fmt.Fprintln(m.w, "no transactions stored")
		return nil
	}

	if m.verbose {
		return printJson(m.w, list)
	}

	for _, tx := range list {
		fmt.Fprintf(m.w, "%-36s  %-10s  %8s %s -> %s %s  %s\n",
			tx.TxId, tx.Status, tx.Amount, tx.SendCurrency,
			tx.ConvertedAmount, tx.ReceiveCurrency,
			tx.CreatedAt.Format(time.RFC3339))
	}
	return nil
}
