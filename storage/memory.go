// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"sort"

	gocache "github.com/patrickmn/go-cache"

	"github.com/yumvi-pay/remitd/fault"
)

// the volatile backend for the web platform and for session keys
//
// entries never expire on their own, matching browser local storage
type memoryStore struct {
	cache *gocache.Cache
}

func newMemoryStore() KeyValueStore {
	return &memoryStore{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

func (s *memoryStore) Put(key []byte, value []byte) error {
	s.cache.Set(string(key), append([]byte{}, value...), gocache.NoExpiration)
	return nil
}

func (s *memoryStore) Get(key []byte) ([]byte, error) {
	obj, found := s.cache.Get(string(key))
	if !found {
		return nil, fault.ErrKeyNotFound
	}
	return obj.([]byte), nil
}

func (s *memoryStore) Has(key []byte) (bool, error) {
	_, found := s.cache.Get(string(key))
	return found, nil
}

func (s *memoryStore) Delete(key []byte) error {
	s.cache.Delete(string(key))
	return nil
}

func (s *memoryStore) Scan(prefix []byte) ([]Element, error) {
	items := s.cache.Items()

	keys := make([]string, 0, len(items))
	for k := range items {
		if bytes.HasPrefix([]byte(k), prefix) {
			keys = append(keys, k)
		}
	}
	// map iteration order is random, restore key order
	sort.Strings(keys)

	elements := make([]Element, 0, len(keys))
	for _, k := range keys {
		obj, found := s.cache.Get(k)
		if !found {
			continue
		}
		elements = append(elements, Element{Key: []byte(k), Value: obj.([]byte)})
	}
	return elements, nil
}

func (s *memoryStore) Close() error {
	s.cache.Flush()
	return nil
}
