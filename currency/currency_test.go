// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/yumvi-pay/remitd/currency"
)

// test valid currency conversions
func TestString(t *testing.T) {

	testData := []struct {
		c currency.Currency
		s string
	}{
		{currency.USDollar, "USD"},
		{currency.Euro, "EUR"},
		{currency.Pound, "GBP"},
		{currency.CanadaDollar, "CAD"},
		{currency.CFAFranc, "XAF"},
		{currency.Naira, "NGN"},
		{currency.Shilling, "KES"},
	}

	for i, item := range testData {
		actual := item.c.String()
		if item.s != actual {
			t.Fatalf("%d: string: expected: %q  actual: %q", i, item.s, actual)
		}

		var c currency.Currency
		n, err := fmt.Sscan(item.s, &c)
		if nil != err {
			t.Fatalf("%d: scan error: %s", i, err)
		}
		if 1 != n {
			t.Fatalf("%d: scan count: expected: 1  actual: %d", i, n)
		}
		if item.c != c {
			t.Fatalf("%d: scan: expected: %#v  actual: %#v", i, item.c, c)
		}
	}
}

// test invalid symbols are rejected
func TestInvalid(t *testing.T) {
	var c currency.Currency
	_, err := fmt.Sscan("XYZ", &c)
	if nil == err {
		t.Fatalf("unexpected success scanning an invalid currency")
	}
}

// test JSON marshalling round trip
func TestJSON(t *testing.T) {

	type item struct {
		Send    currency.Currency `json:"send"`
		Receive currency.Currency `json:"receive"`
	}

	in := item{
		Send:    currency.USDollar,
		Receive: currency.CFAFranc,
	}

	buffer, err := json.Marshal(in)
	if nil != err {
		t.Fatalf("marshal error: %s", err)
	}

	expected := `{"send":"USD","receive":"XAF"}`
	if expected != string(buffer) {
		t.Fatalf("marshal: expected: %q  actual: %q", expected, buffer)
	}

	var out item
	err = json.Unmarshal(buffer, &out)
	if nil != err {
		t.Fatalf("unmarshal error: %s", err)
	}
	if in != out {
		t.Fatalf("round trip: expected: %#v  actual: %#v", in, out)
	}
}

// test index values
func TestIndex(t *testing.T) {
	if 0 != currency.USDollar.Index() {
		t.Fatalf("USD index expected: 0  actual: %d", currency.USDollar.Index())
	}
	if currency.Count-1 != currency.Shilling.Index() {
		t.Fatalf("KES index expected: %d  actual: %d", currency.Count-1, currency.Shilling.Index())
	}
	if currency.Nothing.IsValid() {
		t.Fatalf("Nothing must not be a valid currency")
	}
}
