// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/bitmark-inc/ledgerd/fault"
)

const privateKeyTag = "PRIVATE:"

// ReadPrivateKeyFile - load a key file written by WritePrivateKeyFile
//
// a bare hex seed is also accepted
func ReadPrivateKeyFile(fileName string) (*PrivateKey, error) {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if "" == line || strings.HasPrefix(line, "#") {
			continue
		}
		return PrivateKeyFromHex(strings.TrimPrefix(line, privateKeyTag))
	}
	return nil, fault.InvalidPrivateKey
}

// WritePrivateKeyFile - create a new key file
//
// an existing file is never overwritten
func WritePrivateKeyFile(fileName string, key *PrivateKey) error {
	fd, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if os.IsExist(err) {
		return fault.KeyFileAlreadyExists
	}
	if nil != err {
		return err
	}
	defer fd.Close()

	_, err = fmt.Fprintf(fd, "# public key: %s\n%s%s\n", key.PublicKey(), privateKeyTag, key.Seed())
	return err
}
