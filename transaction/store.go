// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/yumvi-pay/remitd/fault"
	"github.com/yumvi-pay/remitd/storage"
)

// Store - transaction persistence over the Transactions pool
type Store struct {
	log  *logger.L
	pool *storage.PoolHandle
}

// NewStore - open the store
func NewStore() *Store {
	return &Store{
		log:  logger.New("transactions"),
		pool: storage.Pool.Transactions,
	}
}

// Save - persist a record under its id
func (s *Store) Save(tx *Transaction) error {
	buffer, err := json.Marshal(tx)
	if nil != err {
		return err
	}
	s.pool.Put(tx.TxId, buffer)
	return nil
}

// Get - read one record
func (s *Store) Get(txId string) (*Transaction, error) {
	buffer := s.pool.Get(txId)
	if nil == buffer {
		return nil, fault.ErrTransactionNotFound
	}
	var tx Transaction
	if err := json.Unmarshal(buffer, &tx); nil != err {
		s.log.Errorf("corrupt transaction record %q: %s", txId, err)
		return nil, fault.ErrTransactionNotFound
	}
	return &tx, nil
}

// List - the transaction history, newest first
//
// unreadable records are skipped, not fatal
func (s *Store) List() []*Transaction {
	transactions := []*Transaction{}
	s.pool.Iterate(func(key string, value []byte) bool {
		var tx Transaction
		if err := json.Unmarshal(value, &tx); nil != err {
			s.log.Errorf("corrupt transaction record %q skipped: %s", key, err)
			return true
		}
		transactions = append(transactions, &tx)
		return true
	})

	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
	})
	return transactions
}

// SetStatus - caller-driven status change
//
// the value is validated, the transition is not: any status can
// follow any other
func (s *Store) SetStatus(txId string, status Status, reason string) (*Transaction, error) {
	if !status.IsValid() {
		return nil, fault.ErrInvalidStatus
	}

	tx, err := s.Get(txId)
	if nil != err {
		return nil, err
	}

	tx.Status = status
	tx.FailureReason = ""
	if Failed == status {
		tx.FailureReason = reason
	}
	tx.UpdatedAt = nowUTC()

	if err := s.Save(tx); nil != err {
		return nil, err
	}
	return tx, nil
}

// Delete - remove one record
func (s *Store) Delete(txId string) {
	s.pool.Delete(txId)
}

// Count - number of stored records
func (s *Store) Count() int {
	return s.pool.Count()
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
