// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/urfave/cli"

	"github.com/yumvi-pay/remitd/platform"
	"github.com/yumvi-pay/remitd/templates"
)

func runSetup(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	fileName := m.file
	if "" == fileName {
		fileName = "remitd.conf"
	}
	fileName, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return err
	}

	if _, err := os.Stat(fileName); nil == err {
		return fmt.Errorf("configuration file: %q already exists", fileName)
	}

	platformName := c.String("platform")
	if !platform.Valid(platformName) {
		return fmt.Errorf("platform: %q is not supported", platformName)
	}

	dataDirectory, _ := filepath.Split(fileName)

	configData := struct {
		DataDirectory string
		Platform      string
		ReceiptURL    string
		ReceiptToken  string
	}{
		DataDirectory: filepath.Clean(dataDirectory),
		Platform:      platformName,
		ReceiptURL:    c.String("receipt-url"),
		ReceiptToken:  c.String("receipt-token"),
	}

	configTemplate := template.Must(template.New("configuration").Parse(templates.ConfigurationTemplate))

	file, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if nil != err {
		return err
	}
	defer file.Close()

	if err := configTemplate.Execute(file, configData); nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.w, "configuration written to: %s\n", fileName)
	}
	return nil
}
