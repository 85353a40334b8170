// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package receipt - send transaction receipts through the email
// edge function
package receipt

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/yumvi-pay/remitd/api"
	"github.com/yumvi-pay/remitd/fault"
	"github.com/yumvi-pay/remitd/transaction"
)

// Sender - receipt delivery over the request layer
//
// delivery inherits the layer's behaviour: a send attempted offline
// or against a dead network is queued and replayed when connectivity
// returns
type Sender struct {
	log    *logger.L
	client *api.Client
	url    string
	token  string
}

// payload accepted by the edge function
type emailPayload struct {
	RecipientEmail string `json:"recipientEmail"`
	RecipientName  string `json:"recipientName"`
	TransactionId  string `json:"transactionId"`
	Amount         string `json:"amount"`
	Fee            string `json:"fee"`
	TotalAmount    string `json:"totalAmount"`
	Currency       string `json:"currency"`
	Date           string `json:"date"`
	Status         string `json:"status"`
	PaymentMethod  string `json:"paymentMethod,omitempty"`
	Country        string `json:"country"`
	Provider       string `json:"provider,omitempty"`
	HTMLContent    string `json:"htmlContent,omitempty"`
}

// NewSender - bind the sender to an edge function endpoint
func NewSender(client *api.Client, url string, token string) *Sender {
	return &Sender{
		log:    logger.New("receipt"),
		client: client,
		url:    url,
		token:  token,
	}
}

// Send - email the receipt for a finalized transaction
//
// htmlContent may be empty, in which case the edge function renders
// its own template from the field values
func (s *Sender) Send(ctx context.Context, tx *transaction.Transaction, htmlContent string) error {
	if "" == tx.Recipient.Email {
		s.log.Warnf("transaction %s has no recipient email, receipt skipped", tx.TxId)
		return fault.ErrReceiptAddressMissing
	}

	payload := emailPayload{
		RecipientEmail: tx.Recipient.Email,
		RecipientName:  tx.Recipient.Name,
		TransactionId:  tx.TxId,
		Amount:         tx.Amount.String(),
		Fee:            tx.Fee.String(),
		TotalAmount:    tx.TotalAmount.String(),
		Currency:       tx.SendCurrency.String(),
		Date:           tx.CreatedAt.Format(time.RFC3339),
		Status:         tx.Status.String(),
		PaymentMethod:  tx.PaymentMethod,
		Country:        tx.Country,
		Provider:       tx.Provider,
		HTMLContent:    htmlContent,
	}
	body, err := json.Marshal(payload)
	if nil != err {
		return err
	}

	_, err = s.client.Post(ctx, s.url, api.Options{
		Headers: map[string]string{
			"Authorization": "Bearer " + s.token,
		},
		Body:  body,
		Retry: true,
	})
	if nil != err {
		s.log.Errorf("receipt for %s not delivered: %s", tx.TxId, err)
		return err
	}

	s.log.Infof("receipt for %s delivered to %s", tx.TxId, tx.Recipient.Email)
	return nil
}
