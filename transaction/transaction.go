// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transaction - finalized transaction records and their store
//
// one constructor builds every record; the store keeps them in the
// Transactions pool under their id, so the persisted key layout is
// transaction_{id}
package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yumvi-pay/remitd/currency"
	"github.com/yumvi-pay/remitd/fault"
)

// DefaultCountry - receiving country assumed when none is supplied
const DefaultCountry = "CM"

// Recipient - who the money goes to
type Recipient struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Country string `json:"country"`
}

// Transaction - a finalized remittance record
type Transaction struct {
	TxId            string            `json:"txId"`
	Amount          decimal.Decimal   `json:"amount"`
	Fee             decimal.Decimal   `json:"fee"`
	TotalAmount     decimal.Decimal   `json:"totalAmount"`
	ExchangeRate    decimal.Decimal   `json:"exchangeRate"`
	ConvertedAmount decimal.Decimal   `json:"convertedAmount"`
	SendCurrency    currency.Currency `json:"sendCurrency"`
	ReceiveCurrency currency.Currency `json:"receiveCurrency"`
	Recipient       Recipient         `json:"recipient"`
	PaymentMethod   string            `json:"paymentMethod,omitempty"`
	Provider        string            `json:"provider,omitempty"`
	Country         string            `json:"country"`
	Status          Status            `json:"status"`
	FailureReason   string            `json:"failureReason,omitempty"`
	ReceiptSent     bool              `json:"receiptSent,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// Params - constructor input
//
// required: Amount, SendCurrency, ReceiveCurrency, Recipient.Name
// optional: everything else; missing fee is zero, missing country
// falls back to DefaultCountry, missing id is generated
type Params struct {
	TxId            string
	Amount          decimal.Decimal
	Fee             decimal.Decimal
	ExchangeRate    decimal.Decimal
	SendCurrency    currency.Currency
	ReceiveCurrency currency.Currency
	Recipient       Recipient
	PaymentMethod   string
	Provider        string
	Country         string
}

// New - build a transaction record
//
// this is the only creation path: the historical ad hoc creators with
// their conflicting defaults were folded into this one contract
func New(params Params) (*Transaction, error) {

	if params.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fault.ErrInvalidAmount
	}
	if !params.SendCurrency.IsValid() || !params.ReceiveCurrency.IsValid() {
		return nil, fault.ErrInvalidCurrency
	}
	if "" == params.Recipient.Name {
		return nil, fault.ErrRequiredRecipient
	}

	txId := params.TxId
	if "" == txId {
		txId = uuid.New().String()
	}

	country := params.Country
	if "" == country {
		country = DefaultCountry
	}
	recipient := params.Recipient
	if "" == recipient.Country {
		recipient.Country = country
	}

	now := time.Now().UTC()
	return &Transaction{
		TxId:            txId,
		Amount:          params.Amount,
		Fee:             params.Fee,
		TotalAmount:     params.Amount.Add(params.Fee),
		ExchangeRate:    params.ExchangeRate,
		ConvertedAmount: params.Amount.Mul(params.ExchangeRate),
		SendCurrency:    params.SendCurrency,
		ReceiveCurrency: params.ReceiveCurrency,
		Recipient:       recipient,
		PaymentMethod:   params.PaymentMethod,
		Provider:        params.Provider,
		Country:         country,
		Status:          Pending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}
