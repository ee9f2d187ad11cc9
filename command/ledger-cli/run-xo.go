// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"sort"
	"strconv"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/family/xo"
	"github.com/bitmark-inc/ledgerd/namespace"
)

func runXO(action string) cli.ActionFunc {
	return func(c *cli.Context) error {
		m := getMetadata(c)

		name := c.Args().First()
		if "" == name {
			return ErrMissingArguments
		}

		space := 0
		if xo.Take == action {
			if 2 != c.NArg() {
				return ErrMissingArguments
			}
			n, err := strconv.Atoi(c.Args().Get(1))
			if nil != err {
				return err
			}
			space = n
		}

		parameters, err := xo.TransactionParameters(name, action, space)
		if nil != err {
			return err
		}
		return m.submit(parameters)
	}
}

func runXOList(c *cli.Context) error {
	m := getMetadata(c)

	entries, err := m.client().StateList(namespace.Prefix(xo.FamilyName))
	if nil != err {
		return err
	}

	games := []*xo.Game{}
	for _, entry := range entries {
		g, err := xo.Games(entry.Data)
		if nil != err {
			return err
		}
		games = append(games, g...)
	}
	sort.Slice(games, func(i, j int) bool {
		return games[i].Name < games[j].Name
	})
	return printJson(m.w, games)
}
