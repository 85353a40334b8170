// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package draft - the in-progress send-money form state
//
// one canonical, versioned record is authoritative; the historical
// mirror keys are still written, from the same serialized snapshot,
// for readers that expect the old layout, but recovery never reads
// them back
package draft

import (
	"github.com/shopspring/decimal"

	"github.com/yumvi-pay/remitd/currency"
	"github.com/yumvi-pay/remitd/transaction"
)

// storage keys
//
// canonical first; the rest are write-only mirrors
const (
	CanonicalKey = "pendingTransaction"

	backupKey         = "pendingTransactionBackup"
	legacyBackupKey   = "pending_transaction_backup"
	confirmedKey      = "confirmed_transaction_data"
	processedKey      = "processedPendingTransaction"
	lastStepKey       = "lastStep"
	lastAmountKey     = "lastTransactionAmount"
	sessionConfirmKey = "confirm_transaction_session"
	stepKeyPrefix     = "step_"
	stepKeySuffix     = "_data"
)

// ConfirmationStep - the step that triggers the confirmation mirrors
const ConfirmationStep = "confirmation"

// Draft - the form state as accumulated across the wizard steps
type Draft struct {
	Revision        uint64                `json:"revision"`
	Step            string                `json:"step"`
	Amount          decimal.Decimal       `json:"amount"`
	SendAmount      decimal.Decimal       `json:"sendAmount"`
	Fee             decimal.Decimal       `json:"fee"`
	TotalAmount     decimal.Decimal       `json:"totalAmount"`
	ExchangeRate    decimal.Decimal       `json:"exchangeRate"`
	ConvertedAmount decimal.Decimal       `json:"convertedAmount"`
	SendCurrency    currency.Currency     `json:"sendCurrency"`
	ReceiveCurrency currency.Currency     `json:"receiveCurrency"`
	Recipient       transaction.Recipient `json:"recipient"`
	PaymentMethod   string                `json:"paymentMethod,omitempty"`
	Provider        string                `json:"provider,omitempty"`
	UpdatedAt       int64                 `json:"updatedAt"` // epoch milliseconds
}

// resyncTolerance - a recorded converted amount within one unit of
// the recomputed value is left alone; only a strictly greater
// divergence is rewritten
var resyncTolerance = decimal.NewFromInt(1)

// resynchronize the converted amount with amount * rate
//
// returns true if the recorded value was rewritten
func (d *Draft) resync() bool {
	expected := d.Amount.Mul(d.ExchangeRate)
	if d.ConvertedAmount.Sub(expected).Abs().GreaterThan(resyncTolerance) {
		d.ConvertedAmount = expected
		return true
	}
	return false
}
