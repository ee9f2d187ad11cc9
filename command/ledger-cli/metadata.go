// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/client"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// common errors
const (
	ErrMissingArguments = fault.InvalidError("missing arguments")
	ErrMissingKey       = fault.InvalidError("signing key file is required")
)

type metadata struct {
	url      string
	insecure bool
	keyFile  string
	wait     int
	verbose  bool
	e        io.Writer
	w        io.Writer
}

func getMetadata(c *cli.Context) *metadata {
	return c.App.Metadata["config"].(*metadata)
}

func (m *metadata) client() *client.Client {
	if m.verbose {
		fmt.Fprintf(m.e, "url: %q\n", m.url)
	}
	return client.New(m.url, m.insecure)
}

// sign a single transaction into its own batch and send it
func (m *metadata) submit(parameters *transactionrecord.TransactionParameters) error {
	if "" == m.keyFile {
		return ErrMissingKey
	}
	key, err := account.ReadPrivateKeyFile(m.keyFile)
	if nil != err {
		return err
	}

	txn, err := transactionrecord.NewTransaction(key, parameters)
	if nil != err {
		return err
	}
	batch, err := transactionrecord.NewBatch(key, []*transactionrecord.Transaction{txn})
	if nil != err {
		return err
	}
	if m.verbose {
		fmt.Fprintf(m.e, "signer: %s\n", key.PublicKey())
		fmt.Fprintf(m.e, "transaction: %s\n", txn.HeaderSignature)
	}

	batches := []*transactionrecord.Batch{batch}
	c := m.client()

	if m.wait <= 0 {
		link, err := c.Submit(batches)
		if nil != err {
			return err
		}
		return printJson(m.w, struct {
			BatchID string `json:"batch_id"`
			Link    string `json:"link"`
		}{
			BatchID: batch.HeaderSignature,
			Link:    link,
		})
	}

	statuses, err := c.SubmitAndWait(batches, time.Duration(m.wait)*time.Second)
	if nil != err {
		return err
	}
	return printJson(m.w, statuses)
}

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}
