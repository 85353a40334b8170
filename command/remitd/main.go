// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/yumvi-pay/remitd/api"
	"github.com/yumvi-pay/remitd/background"
	"github.com/yumvi-pay/remitd/cache"
	"github.com/yumvi-pay/remitd/configuration"
	"github.com/yumvi-pay/remitd/connectivity"
	"github.com/yumvi-pay/remitd/queue"
	"github.com/yumvi-pay/remitd/receipt"
	"github.com/yumvi-pay/remitd/storage"
	"github.com/yumvi-pay/remitd/transaction"
	"github.com/yumvi-pay/remitd/version"
)

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, _, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version.Version)
	}

	if len(options["help"]) > 0 {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE", program)
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := configuration.GetConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	if len(options["verbose"]) > 0 {
		theConfiguration.Logging.Console = true
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version.Version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// general info
	log.Infof("platform: %s", theConfiguration.Platform)
	log.Infof("database: %q", theConfiguration.Database.Directory)

	// start the data storage
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.Platform, theConfiguration.Database.Directory)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// connectivity state, initially online until told otherwise
	conn := connectivity.New()

	// recover any requests queued by a previous run
	q := queue.New()
	if depth := q.Depth(); depth > 0 {
		log.Infof("recovered %d queued requests", depth)
	}

	client := api.NewClient(conn, q, theConfiguration.Platform, api.Config{
		Timeout:    time.Duration(theConfiguration.ClientTimeout) * time.Second,
		MaxRetries: theConfiguration.MaxRetries,
	})

	processes := background.Processes{
		queue.NewDrainer(q, conn, client.ReplayFunc()),
		cache.NewCleaner(time.Duration(theConfiguration.CacheRetentionDays) * 24 * time.Hour),
	}

	// email receipts for completed transactions, when configured
	if "" != theConfiguration.Receipt.URL {
		sender := receipt.NewSender(client, theConfiguration.Receipt.URL, theConfiguration.Receipt.Token)
		processes = append(processes, receipt.NewDispatcher(sender, transaction.NewStore()))
	}

	// optional offline-mode marker file
	if "" != theConfiguration.OfflineModeFile {
		watcher, err := connectivity.NewWatcher(conn, theConfiguration.OfflineModeFile)
		if nil != err {
			log.Criticalf("offline watcher error: %s", err)
			exitwithstatus.Message("offline watcher error: %s", err)
		}
		processes = append(processes, watcher)
	}

	log.Info("start background processes")
	proc := background.Start(processes, nil)
	defer proc.Stop()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("waiting for CTRL-C (SIGINT) or 'kill %d' (SIGTERM)…\n", os.Getpid())
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Println("shutting down…")
	}

	log.Info("shutting down…")
}
