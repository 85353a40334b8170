// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/yumvi-pay/remitd/platform"
	"github.com/yumvi-pay/remitd/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from the configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultDatabaseDirectory = "data"

	defaultLogDirectory = "log"
	defaultLogFile      = "remitd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultClientTimeout      = 10 // seconds
	defaultMaxRetries         = 3
	defaultCacheRetentionDays = 7
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - where the durable key-value store lives
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
}

// ReceiptType - the email edge function endpoint
type ReceiptType struct {
	URL   string `gluamapper:"url" json:"url"`
	Token string `gluamapper:"token" json:"token"`
}

// Configuration - the daemon settings
type Configuration struct {
	DataDirectory      string               `gluamapper:"data_directory" json:"data_directory"`
	PidFile            string               `gluamapper:"pidfile" json:"pidfile"`
	Platform           string               `gluamapper:"platform" json:"platform"`
	ClientTimeout      int                  `gluamapper:"client_timeout" json:"client_timeout"` // seconds
	MaxRetries         int                  `gluamapper:"max_retries" json:"max_retries"`
	OfflineModeFile    string               `gluamapper:"offline_mode_file" json:"offline_mode_file"`
	CacheRetentionDays int                  `gluamapper:"cache_retention_days" json:"cache_retention_days"`
	Database           DatabaseType         `gluamapper:"database" json:"database"`
	Receipt            ReceiptType          `gluamapper:"receipt" json:"receipt"`
	Logging            logger.Configuration `gluamapper:"logging" json:"logging"`
}

// GetConfiguration - read, decode and verify the configuration
func GetConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory:      defaultDataDirectory,
		PidFile:            "", // no PidFile by default
		Platform:           platform.Native,
		ClientTimeout:      defaultClientTimeout,
		MaxRetries:         defaultMaxRetries,
		CacheRetentionDays: defaultCacheRetentionDays,

		Database: DatabaseType{
			Directory: defaultDatabaseDirectory,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	options.Platform = strings.ToLower(options.Platform)
	if !platform.Valid(options.Platform) {
		return nil, fmt.Errorf("platform: %q is not supported", options.Platform)
	}

	if options.ClientTimeout <= 0 {
		options.ClientTimeout = defaultClientTimeout
	}
	if options.MaxRetries <= 0 {
		options.MaxRetries = defaultMaxRetries
	}
	if options.CacheRetentionDays <= 0 {
		options.CacheRetentionDays = defaultCacheRetentionDays
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
		&options.OfflineModeFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path separator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("files: %q is not plain name", *f[0])
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}
