// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package receipt

import (
	"context"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/yumvi-pay/remitd/transaction"
)

const dispatchInterval = time.Minute

// Dispatcher - background process that emails a receipt for every
// completed transaction that does not have one yet
//
// a transaction is marked as receipted only after a successful send,
// so a failed delivery is retried on the next sweep
type Dispatcher struct {
	log    *logger.L
	sender *Sender
	store  *transaction.Store
}

// NewDispatcher - create the dispatcher
func NewDispatcher(sender *Sender, store *transaction.Store) *Dispatcher {
	return &Dispatcher{
		log:    logger.New("receipt-dispatch"),
		sender: sender,
		store:  store,
	}
}

// Run - background process loop
func (d *Dispatcher) Run(args interface{}, shutdown <-chan struct{}) {
	ticker := time.NewTicker(dispatchInterval)
loop:
	for {
		select {
		case <-ticker.C:
			d.Dispatch()
		case <-shutdown:
			ticker.Stop()
			break loop
		}
	}
}

// Dispatch - one sweep over the stored transactions
func (d *Dispatcher) Dispatch() {
	for _, tx := range d.store.List() {
		if transaction.Completed != tx.Status || tx.ReceiptSent {
			continue
		}
		if "" == tx.Recipient.Email {
			continue
		}

		if err := d.sender.Send(context.Background(), tx, ""); nil != err {
			d.log.Warnf("receipt for %s deferred: %s", tx.TxId, err)
			continue
		}

		tx.ReceiptSent = true
		if err := d.store.Save(tx); nil != err {
			d.log.Errorf("receipt flag for %s not saved: %s", tx.TxId, err)
		}
	}
}
