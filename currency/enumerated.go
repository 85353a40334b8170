// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency

import (
	"fmt"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/yumvi-pay/remitd/fault"
)

// currency enumeration
type Currency uint64

// possible currency values
//
// sending side is typically USD/EUR/GBP/CAD, receiving side is the
// mobile-money corridor currencies
const (
	Nothing      Currency = iota // this must be the first value
	USDollar     Currency = iota
	Euro         Currency = iota
	Pound        Currency = iota
	CanadaDollar Currency = iota
	CFAFranc     Currency = iota
	Naira        Currency = iota
	Shilling     Currency = iota
	maximumValue Currency = iota // this must be the last value
	First        Currency = Nothing + 1
	Last         Currency = maximumValue - 1
	Count        int      = int(Last) // count of currencies
)

// internal conversion
func toString(c Currency) ([]byte, error) {
	switch c {
	case Nothing:
		return []byte{}, nil
	case USDollar:
		return []byte("USD"), nil
	case Euro:
		return []byte("EUR"), nil
	case Pound:
		return []byte("GBP"), nil
	case CanadaDollar:
		return []byte("CAD"), nil
	case CFAFranc:
		return []byte("XAF"), nil
	case Naira:
		return []byte("NGN"), nil
	case Shilling:
		return []byte("KES"), nil
	default:
		return []byte{}, fault.ErrInvalidCurrency
	}
}

// convert a string to a currency
func fromString(in string) (Currency, error) {
	switch strings.ToLower(in) {
	case "":
		return Nothing, nil
	case "usd", "dollar":
		return USDollar, nil
	case "eur", "euro":
		return Euro, nil
	case "gbp", "pound":
		return Pound, nil
	case "cad":
		return CanadaDollar, nil
	case "xaf", "fcfa":
		return CFAFranc, nil
	case "ngn", "naira":
		return Naira, nil
	case "kes", "shilling":
		return Shilling, nil
	default:
		return Nothing, fault.ErrInvalidCurrency
	}
}

// convert a currency to its string symbol
func (currency Currency) String() string {
	s, err := toString(currency)
	if nil != err {
		logger.Panicf("invalid currency enumeration: %d", currency)
	}
	return string(s)
}

// convert both enum value and symbol, for debugging
func (currency Currency) GoString() string {
	return fmt.Sprintf("<Currency#%d:%q>", currency, currency.String())
}

// parse a currency symbol from scanner input
func (currency *Currency) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if c >= 'A' && c <= 'Z' {
			return true
		}
		if c >= 'a' && c <= 'z' {
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	parsed, err := fromString(string(token))
	if nil != err {
		return err
	}

	*currency = parsed
	return nil
}

// valid currency if in range of First to Last
// Nothing is not considered as valid
func (currency Currency) IsValid() bool {
	return currency >= First && currency <= Last
}

// convert a valid currency to a zero based array index
func (currency Currency) Index() int {
	if !currency.IsValid() {
		logger.Panicf("currency.Index: invalid currency: %d", currency)
	}
	return int(currency - First) // zero based index
}
