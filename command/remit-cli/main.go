// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/yumvi-pay/remitd/configuration"
)

type metadata struct {
	file    string
	config  *configuration.Configuration
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "remit-cli"
	app.Usage = "inspect and maintain the local remitd data store"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config-file, c",
			Value: "",
			Usage: "*remitd configuration `FILE`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "setup",
			Usage:     "write an initial configuration file",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "platform, p",
					Value: "native",
					Usage: " storage platform [native|web|local] `NAME`",
				},
				cli.StringFlag{
					Name:  "receipt-url, r",
					Value: "",
					Usage: " email edge function `URL`",
				},
				cli.StringFlag{
					Name:  "receipt-token, t",
					Value: "",
					Usage: " email edge function bearer `TOKEN`",
				},
			},
			Action: runSetup,
		},
		{
			Name:   "status",
			Usage:  "summarize the local store",
			Action: runStatus,
		},
		{
			Name:      "cache",
			Usage:     "list cached API responses",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "data, d",
					Usage: " include the cached payloads",
				},
			},
			Action: runCache,
		},
		{
			Name:   "clear-cache",
			Usage:  "drop cached API responses and offline fallback data",
			Action: runClearCache,
		},
		{
			Name:   "queue",
			Usage:  "list requests queued for replay",
			Action: runQueue,
		},
		{
			Name:   "transactions",
			Usage:  "list stored transactions, newest first",
			Action: runTransactions,
		},
		{
			Name:   "draft",
			Usage:  "show the current transaction draft",
			Action: runDraft,
		},
	}

	app.Metadata = map[string]interface{}{
		"config": &metadata{
			e: app.ErrWriter,
			w: app.Writer,
		},
	}

	app.Before = func(c *cli.Context) error {
		m := c.App.Metadata["config"].(*metadata)
		m.file = c.GlobalString("config-file")
		m.verbose = c.GlobalBool("verbose")
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(os.Stderr, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
