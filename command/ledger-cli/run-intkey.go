// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"strconv"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/family/intkey"
	"github.com/bitmark-inc/ledgerd/fault"
)

func runIntkey(verb string) cli.ActionFunc {
	return func(c *cli.Context) error {
		m := getMetadata(c)

		if 2 != c.NArg() {
			return ErrMissingArguments
		}
		name := c.Args().Get(0)
		value, err := strconv.ParseUint(c.Args().Get(1), 10, 32)
		if nil != err {
			return err
		}

		parameters, err := intkey.TransactionParameters(verb, name, value)
		if nil != err {
			return err
		}
		return m.submit(parameters)
	}
}

func runIntkeyShow(c *cli.Context) error {
	m := getMetadata(c)

	name := c.Args().First()
	if "" == name {
		return ErrMissingArguments
	}

	data, err := m.client().State(intkey.Address(name))
	if nil != err {
		return err
	}
	values, err := intkey.DecodeState(data)
	if nil != err {
		return err
	}
	value, ok := values[name]
	if !ok {
		return fault.StateNotFound
	}
	return printJson(m.w, map[string]uint64{name: value})
}
