// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/bitmark-inc/logger"

	"github.com/yumvi-pay/remitd/configuration"
	"github.com/yumvi-pay/remitd/storage"
)

// openStores - read the daemon configuration and open its data store
//
// the returned function closes everything again; the store is
// exclusive so the daemon must not be running
func openStores(m *metadata) (func(), error) {
	if "" == m.file {
		return nil, fmt.Errorf("config-file is required")
	}

	config, err := configuration.GetConfiguration(m.file)
	if nil != err {
		return nil, err
	}
	m.config = config

	logging := config.Logging
	logging.Console = false
	if err := logger.Initialise(logging); nil != err {
		return nil, err
	}

	if err := storage.Initialise(config.Platform, config.Database.Directory); nil != err {
		logger.Finalise()
		return nil, err
	}

	return func() {
		_ = storage.Finalise()
		logger.Finalise()
	}, nil
}
