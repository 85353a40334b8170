// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package templates

const (
	/**** Configuration template ****/
	ConfigurationTemplate = `-- remitd.conf  -*- mode: lua -*-

local M = {}

-- all relative paths are resolved against this directory
M.data_directory = "{{.DataDirectory}}"

-- optional PID file, absolute or relative to the data directory
-- M.pidfile = "remitd.pid"

-- storage backend selection: "native" or "web" or "local"
M.platform = "{{.Platform}}"

-- request layer tuning
M.client_timeout = 10 -- seconds
M.max_retries = 3

-- presence of this file forces offline mode
M.offline_mode_file = "offline.marker"

-- aged API cache envelopes are removed after this many days
M.cache_retention_days = 7

M.database = {
    directory = "data"
}

-- email receipt edge function
M.receipt = {
    url = "{{.ReceiptURL}}",
    token = "{{.ReceiptToken}}"
}

M.logging = {
    directory = "log",
    file = "remitd.log",
    size = 1048576,
    count = 10,
    console = false,
    levels = {
        DEFAULT = "info"
    }
}

return M
`
)
