// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package draft_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/yumvi-pay/remitd/currency"
	"github.com/yumvi-pay/remitd/draft"
	"github.com/yumvi-pay/remitd/fault"
	"github.com/yumvi-pay/remitd/platform"
	"github.com/yumvi-pay/remitd/storage"
	"github.com/yumvi-pay/remitd/transaction"
)

const testingDirName = "testing-draft"

func TestMain(m *testing.M) {
	dirPath, _ := filepath.Abs(testingDirName)
	_ = os.RemoveAll(dirPath)
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "draft.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	if err := logger.Initialise(logging); nil != err {
		panic(err)
	}
	if err := storage.Initialise(platform.Local, testingDirName); nil != err {
		panic(err)
	}

	result := m.Run()

	_ = storage.Finalise()
	logger.Finalise()
	_ = os.RemoveAll(dirPath)
	os.Exit(result)
}

func newDraft() *draft.Draft {
	return &draft.Draft{
		Amount:          decimal.NewFromInt(100),
		Fee:             decimal.NewFromInt(3),
		ExchangeRate:    decimal.NewFromInt(610),
		ConvertedAmount: decimal.NewFromInt(61000),
		SendCurrency:    currency.USDollar,
		ReceiveCurrency: currency.CFAFranc,
		Recipient: transaction.Recipient{
			Name:    "Jean Mbarga",
			Phone:   "+237650000001",
			Country: "CM",
		},
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := draft.NewStore()
	defer s.Clear()

	d := newDraft()
	err := s.Save(d, "amount")
	assert.Nil(t, err, "save error")

	loaded, err := s.Load()
	assert.Nil(t, err, "load error")
	assert.Equal(t, "amount", loaded.Step, "step mismatch")
	assert.Equal(t, uint64(1), loaded.Revision, "first save must be revision 1")
	assert.True(t, loaded.Amount.Equal(decimal.NewFromInt(100)), "amount mismatch")
	assert.True(t, loaded.SendAmount.Equal(loaded.Amount), "sendAmount must track amount")
	assert.True(t, loaded.TotalAmount.Equal(decimal.NewFromInt(103)), "totalAmount must be amount plus fee")
	assert.Equal(t, "Jean Mbarga", loaded.Recipient.Name, "recipient mismatch")
}

func TestRevisionIncrementsPerSave(t *testing.T) {
	s := draft.NewStore()
	defer s.Clear()

	d := newDraft()
	assert.Nil(t, s.Save(d, "amount"), "save error")
	assert.Nil(t, s.Save(d, "recipient"), "save error")
	assert.Nil(t, s.Save(d, "payment"), "save error")

	loaded, err := s.Load()
	assert.Nil(t, err, "load error")
	assert.Equal(t, uint64(3), loaded.Revision, "revision must count saves")
	assert.Equal(t, "payment", loaded.Step, "step mismatch")
}

func TestLoadMissingDraft(t *testing.T) {
	s := draft.NewStore()
	s.Clear()

	_, err := s.Load()
	assert.Equal(t, fault.ErrDraftNotFound, err, "missing draft error mismatch")
}

func TestConvertedAmountResync(t *testing.T) {
	s := draft.NewStore()
	defer s.Clear()

	// recorded converted amount drifted far from 100 * 610
	d := newDraft()
	d.ConvertedAmount = decimal.NewFromInt(42)
	assert.Nil(t, s.Save(d, "amount"), "save error")

	loaded, err := s.Load()
	assert.Nil(t, err, "load error")
	assert.True(t, loaded.ConvertedAmount.Equal(decimal.NewFromInt(61000)),
		"diverged converted amount must be recomputed, got %s", loaded.ConvertedAmount)
}

func TestConvertedAmountWithinToleranceKept(t *testing.T) {
	s := draft.NewStore()
	defer s.Clear()

	// one unit of drift or less is not touched
	recorded := decimal.RequireFromString("60999.5")
	d := newDraft()
	d.ConvertedAmount = recorded
	assert.Nil(t, s.Save(d, "amount"), "save error")

	loaded, err := s.Load()
	assert.Nil(t, err, "load error")
	assert.True(t, loaded.ConvertedAmount.Equal(recorded),
		"drift within one unit must be preserved, got %s", loaded.ConvertedAmount)
}

func TestMirrorsIdenticalAtWrite(t *testing.T) {
	s := draft.NewStore()
	defer s.Clear()

	d := newDraft()
	assert.Nil(t, s.Save(d, draft.ConfirmationStep), "save error")

	pool := storage.Pool.Drafts
	canonical := pool.Get(draft.CanonicalKey)
	assert.NotNil(t, canonical, "canonical record missing")

	mirrors := []string{
		"pendingTransactionBackup",
		"pending_transaction_backup",
		"confirmed_transaction_data",
		"processedPendingTransaction",
		"step_confirmation_data",
	}
	for _, key := range mirrors {
		assert.Equal(t, string(canonical), string(pool.Get(key)), "mirror %q diverged from canonical", key)
	}
	assert.Equal(t, string(canonical), string(storage.Pool.Session.Get("confirm_transaction_session")),
		"session confirmation marker diverged from canonical")

	// the scalar mirrors carry the step and amount of the same snapshot
	var record draft.Draft
	assert.Nil(t, json.Unmarshal(canonical, &record), "canonical unmarshal error")
	assert.Equal(t, draft.ConfirmationStep, string(pool.Get("lastStep")), "lastStep mismatch")
	assert.Equal(t, record.Amount.String(), string(pool.Get("lastTransactionAmount")), "lastTransactionAmount mismatch")
	assert.True(t, record.Amount.Equal(record.SendAmount), "amount and sendAmount must be identical")
	assert.True(t, record.TotalAmount.Equal(record.Amount.Add(record.Fee)), "totalAmount mismatch")
}

func TestConfirmationMirrorsOnlyAtConfirmation(t *testing.T) {
	s := draft.NewStore()
	defer s.Clear()

	assert.Nil(t, s.Save(newDraft(), "amount"), "save error")

	pool := storage.Pool.Drafts
	assert.Nil(t, pool.Get("confirmed_transaction_data"), "confirmation mirror written too early")
	assert.Nil(t, pool.Get("processedPendingTransaction"), "processed mirror written too early")
	assert.Nil(t, storage.Pool.Session.Get("confirm_transaction_session"), "session marker written too early")
}

func TestClearRemovesEverything(t *testing.T) {
	s := draft.NewStore()

	assert.Nil(t, s.Save(newDraft(), "amount"), "save error")
	assert.Nil(t, s.Save(newDraft(), draft.ConfirmationStep), "save error")
	s.Clear()

	_, err := s.Load()
	assert.Equal(t, fault.ErrDraftNotFound, err, "draft must be gone after clear")
	assert.Equal(t, 0, storage.Pool.Drafts.Count(), "draft pool must be empty after clear")
	assert.Nil(t, storage.Pool.Session.Get("confirm_transaction_session"), "session marker must be gone after clear")
}
