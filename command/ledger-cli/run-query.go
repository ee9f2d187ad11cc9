// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"strconv"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/namespace"
)

func runBlocks(c *cli.Context) error {
	m := getMetadata(c)

	var start *uint64
	if s := c.String("start"); "" != s {
		n, err := strconv.ParseUint(s, 10, 64)
		if nil != err {
			return err
		}
		start = &n
	}

	blocks, err := m.client().Blocks(start, c.Int("count"))
	if nil != err {
		return err
	}
	return printJson(m.w, blocks)
}

func runBlock(c *cli.Context) error {
	m := getMetadata(c)

	id := c.Args().First()
	if "" == id {
		return ErrMissingArguments
	}

	blk, err := m.client().Block(id)
	if nil != err {
		return err
	}
	return printJson(m.w, blk)
}

// a full address gives one value, anything shorter lists a prefix
func runState(c *cli.Context) error {
	m := getMetadata(c)

	address := c.Args().First()
	if "" == address {
		return ErrMissingArguments
	}

	if namespace.Valid(address) {
		data, err := m.client().State(address)
		if nil != err {
			return err
		}
		return printJson(m.w, struct {
			Address string `json:"address"`
			Data    []byte `json:"data"`
		}{
			Address: address,
			Data:    data,
		})
	}

	entries, err := m.client().StateList(address)
	if nil != err {
		return err
	}
	return printJson(m.w, entries)
}

func runStatus(c *cli.Context) error {
	m := getMetadata(c)

	if 0 == c.NArg() {
		return ErrMissingArguments
	}

	statuses, err := m.client().Statuses(c.Args(), time.Duration(m.wait)*time.Second)
	if nil != err {
		return err
	}
	return printJson(m.w, statuses)
}
