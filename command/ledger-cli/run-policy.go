// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"io/ioutil"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/family/settings"
	"github.com/bitmark-inc/ledgerd/namespace"
	"github.com/bitmark-inc/ledgerd/policy"
)

// file holds a JSON array of rules:
//
//	[{"namespace": "5b7349", "mode": "allow_all"}, ...]
func runPolicySet(c *cli.Context) error {
	m := getMetadata(c)

	fileName := c.Args().First()
	if "" == fileName {
		return ErrMissingArguments
	}
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return err
	}

	var rules []policy.Rule
	if err := json.Unmarshal(data, &rules); nil != err {
		return err
	}

	parameters, err := settings.TransactionParameters(rules)
	if nil != err {
		return err
	}
	return m.submit(parameters)
}

func runPolicyShow(c *cli.Context) error {
	m := getMetadata(c)

	data, err := m.client().State(namespace.PolicyAddress)
	if nil != err {
		return err
	}
	rules, err := policy.Decode(data)
	if nil != err {
		return err
	}
	return printJson(m.w, rules)
}
