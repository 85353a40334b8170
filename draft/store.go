// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package draft

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/yumvi-pay/remitd/fault"
	"github.com/yumvi-pay/remitd/storage"
)

// Store - draft persistence over the Drafts pool
//
// the confirmation marker additionally lands in the volatile Session
// pool so it never survives a restart
type Store struct {
	log     *logger.L
	pool    *storage.PoolHandle
	session *storage.PoolHandle
}

// NewStore - open the store
func NewStore() *Store {
	return &Store{
		log:     logger.New("drafts"),
		pool:    storage.Pool.Drafts,
		session: storage.Pool.Session,
	}
}

// Save - persist the draft at the end of a wizard step
//
// the record is normalized first: sendAmount and totalAmount are
// derived from amount, and a converted amount that drifted more than
// one unit from amount * rate is recomputed; then a single serialized
// snapshot is written to the canonical key and to every mirror, so
// the mirrors can never disagree with each other
func (s *Store) Save(d *Draft, step string) error {

	d.Step = step
	d.SendAmount = d.Amount
	d.TotalAmount = d.Amount.Add(d.Fee)
	if d.resync() {
		s.log.Warnf("converted amount resynchronized to %s at step %q", d.ConvertedAmount, step)
	}

	d.Revision = 1
	if previous, err := s.Load(); nil == err {
		d.Revision = previous.Revision + 1
	}
	d.UpdatedAt = time.Now().UnixNano() / int64(time.Millisecond)

	snapshot, err := json.Marshal(d)
	if nil != err {
		return err
	}

	s.pool.Put(CanonicalKey, snapshot)
	s.pool.Put(backupKey, snapshot)
	s.pool.Put(stepKeyPrefix+step+stepKeySuffix, snapshot)
	s.pool.Put(lastStepKey, []byte(step))
	s.pool.Put(lastAmountKey, []byte(d.Amount.String()))

	if ConfirmationStep == step {
		s.pool.Put(confirmedKey, snapshot)
		s.pool.Put(legacyBackupKey, snapshot)
		s.pool.Put(processedKey, snapshot)
		s.session.Put(sessionConfirmKey, snapshot)
	}

	return nil
}

// Load - read the draft back
//
// only the canonical key is consulted; the mirrors are write-only
func (s *Store) Load() (*Draft, error) {
	buffer := s.pool.Get(CanonicalKey)
	if nil == buffer {
		return nil, fault.ErrDraftNotFound
	}
	var d Draft
	if err := json.Unmarshal(buffer, &d); nil != err {
		s.log.Errorf("corrupt draft record: %s", err)
		return nil, fault.ErrDraftNotFound
	}
	return &d, nil
}

// Clear - drop the draft and every mirror
func (s *Store) Clear() {
	stepKeys := []string{}
	s.pool.Iterate(func(key string, value []byte) bool {
		if strings.HasPrefix(key, stepKeyPrefix) && strings.HasSuffix(key, stepKeySuffix) {
			stepKeys = append(stepKeys, key)
		}
		return true
	})
	for _, key := range stepKeys {
		s.pool.Delete(key)
	}

	s.pool.Delete(CanonicalKey)
	s.pool.Delete(backupKey)
	s.pool.Delete(legacyBackupKey)
	s.pool.Delete(confirmedKey)
	s.pool.Delete(processedKey)
	s.pool.Delete(lastStepKey)
	s.pool.Delete(lastAmountKey)
	s.session.Delete(sessionConfirmKey)
}
