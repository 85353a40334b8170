// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// a key/value pair returned by a scan
type Element struct {
	Key   []byte
	Value []byte
}

// KeyValueStore - the backend contract
//
// Get returns fault.ErrKeyNotFound for a missing key; Scan returns
// elements in ascending key order so zero-padded sequence keys come
// back in FIFO order
type KeyValueStore interface {
	Put(key []byte, value []byte) error
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	Delete(key []byte) error
	Scan(prefix []byte) ([]Element, error)
	Close() error
}
