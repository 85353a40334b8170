// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/yumvi-pay/remitd/fault"
)

// the durable backend for the native platform
type levelDBStore struct {
	db *leveldb.DB
}

func newLevelDBStore(file string) (KeyValueStore, error) {
	db, err := leveldb.OpenFile(file, nil)
	if nil != err {
		return nil, err
	}
	return &levelDBStore{db: db}, nil
}

func (s *levelDBStore) Put(key []byte, value []byte) error {
	return s.db.Put(key, value, nil)
}

func (s *levelDBStore) Get(key []byte) ([]byte, error) {
	value, err := s.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, fault.ErrKeyNotFound
	}
	if nil != err {
		return nil, err
	}
	return value, nil
}

func (s *levelDBStore) Has(key []byte) (bool, error) {
	return s.db.Has(key, nil)
}

func (s *levelDBStore) Delete(key []byte) error {
	return s.db.Delete(key, nil)
}

func (s *levelDBStore) Scan(prefix []byte) ([]Element, error) {
	iter := s.db.NewIterator(ldb_util.BytesPrefix(prefix), nil)
	defer iter.Release()

	elements := []Element{}
	for iter.Next() {
		// iterator buffers are reused, copy out
		key := append([]byte{}, iter.Key()...)
		value := append([]byte{}, iter.Value()...)
		elements = append(elements, Element{Key: key, Value: value})
	}
	return elements, iter.Error()
}

func (s *levelDBStore) Close() error {
	return s.db.Close()
}
