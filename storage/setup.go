// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"path/filepath"
	"reflect"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/yumvi-pay/remitd/fault"
	"github.com/yumvi-pay/remitd/platform"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Offline      *PoolHandle `prefix:"offline_"`
	APICache     *PoolHandle `prefix:"api_cache_"`
	Transactions *PoolHandle `prefix:"transaction_"`
	Drafts       *PoolHandle `prefix:"draft_"`
	Queue        *PoolHandle `prefix:"queue_"`
	Stats        *PoolHandle `prefix:"stats_"`
	Session      *PoolHandle `prefix:"session_" backend:"memory"`
}

// Pool - the set of exported pools
var Pool pools

const databaseName = "remitd-local.leveldb"

// holds the backend handles
var poolData struct {
	sync.RWMutex
	log     *logger.L
	backend KeyValueStore // platform-selected, fixed for process life
	session KeyValueStore // always memory

	// set once during initialise
	initialised bool
}

// Initialise - open the platform backend and wire up the pools
//
// this must be called before any pool is accessed; the backend is
// chosen here, once, from the platform name (never per call)
func Initialise(platformName string, directory string) error {
	poolData.Lock()
	defer poolData.Unlock()

	if poolData.initialised {
		return fault.ErrAlreadyInitialised
	}

	if !platform.Valid(platformName) {
		return fault.ErrInvalidPlatform
	}

	poolData.log = logger.New("storage")
	poolData.log.Info("starting…")

	if platform.Durable(platformName) {
		db, err := newLevelDBStore(filepath.Join(directory, databaseName))
		if nil != err {
			return err
		}
		poolData.backend = db
	} else {
		poolData.backend = newMemoryStore()
	}
	poolData.session = newMemoryStore()

	poolType := reflect.TypeOf(Pool)
	poolValue := reflect.ValueOf(&Pool).Elem()

	for i := 0; i < poolType.NumField(); i += 1 {
		fieldInfo := poolType.Field(i)
		prefixTag := fieldInfo.Tag.Get("prefix")
		if "" == prefixTag {
			logger.Panicf("storage.Initialise: pool: %s has no prefix tag", fieldInfo.Name)
		}

		store := poolData.backend
		if "memory" == fieldInfo.Tag.Get("backend") {
			store = poolData.session
		}

		p := &PoolHandle{
			prefix: prefixTag,
			store:  store,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}

	poolData.initialised = true
	return nil
}

// Finalise - close the backend
func Finalise() error {
	poolData.Lock()
	defer poolData.Unlock()

	if !poolData.initialised {
		return fault.ErrNotInitialised
	}

	poolData.log.Info("shutting down…")

	_ = poolData.session.Close()
	err := poolData.backend.Close()

	// unlink all of the pools
	poolValue := reflect.ValueOf(&Pool).Elem()
	for i := 0; i < poolValue.NumField(); i += 1 {
		poolValue.Field(i).Set(reflect.Zero(poolValue.Field(i).Type()))
	}

	poolData.backend = nil
	poolData.session = nil
	poolData.initialised = false

	poolData.log.Flush()
	return err
}

// IsInitialised - test if storage is available
func IsInitialised() bool {
	poolData.RLock()
	defer poolData.RUnlock()
	return poolData.initialised
}
