// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/account"
)

func runKeygen(c *cli.Context) error {

	m := getMetadata(c)

	fileName := c.Args().First()
	if "" == fileName {
		return ErrMissingArguments
	}

	key, err := account.NewPrivateKey()
	if nil != err {
		return err
	}
	if err := account.WritePrivateKeyFile(fileName, key); nil != err {
		return err
	}

	return printJson(m.w, struct {
		File      string `json:"file"`
		PublicKey string `json:"public_key"`
	}{
		File:      fileName,
		PublicKey: key.PublicKey(),
	})
}
