// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"encoding/hex"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
)

const testSeed = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"
const testPublicKey = "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a"

func TestPrivateKeyFromSeed(t *testing.T) {
	key, err := account.PrivateKeyFromHex(testSeed)
	require.Nil(t, err, "from hex")
	assert.Equal(t, testPublicKey, key.PublicKey(), "wrong public key")
	assert.Equal(t, testSeed, key.Seed(), "wrong seed")

	full, err := account.PrivateKeyFromHex(testSeed + testPublicKey)
	require.Nil(t, err, "from full key")
	assert.Equal(t, testPublicKey, full.PublicKey(), "wrong public key")
}

func TestPrivateKeyFromHexInvalid(t *testing.T) {
	items := []string{
		"",
		"zz",
		testSeed[:62],
		testSeed + "00000000000000000000000000000000000000000000000000000000000000ff",
	}
	for i, s := range items {
		_, err := account.PrivateKeyFromHex(s)
		assert.Equal(t, fault.InvalidPrivateKey, err, "%d: wrong error", i)
	}
}

func TestSignAndVerify(t *testing.T) {
	key, err := account.NewPrivateKey()
	require.Nil(t, err, "new key")

	message := []byte("block 17")
	sig, err := key.Sign(message)
	require.Nil(t, err, "sign")
	signature := hex.EncodeToString(sig)

	assert.Nil(t, account.Verify(key.PublicKey(), message, signature), "verify")
	assert.Equal(t, fault.SignatureInvalid, account.Verify(key.PublicKey(), []byte("block 18"), signature), "modified message")
	assert.Equal(t, fault.SignatureInvalid, account.Verify(key.PublicKey(), message, signature[2:]), "short signature")
	assert.Equal(t, fault.InvalidPublicKey, account.Verify("abc", message, signature), "bad key")

	other, err := account.NewPrivateKey()
	require.Nil(t, err, "new key")
	assert.Equal(t, fault.SignatureInvalid, account.Verify(other.PublicKey(), message, signature), "wrong key")
}

func TestKeyFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "ledgerd-key-")
	require.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	fileName := filepath.Join(dir, "validator.priv")
	key, err := account.PrivateKeyFromHex(testSeed)
	require.Nil(t, err, "from hex")

	err = account.WritePrivateKeyFile(fileName, key)
	require.Nil(t, err, "write")

	err = account.WritePrivateKeyFile(fileName, key)
	assert.Equal(t, fault.KeyFileAlreadyExists, err, "overwrite")

	loaded, err := account.ReadPrivateKeyFile(fileName)
	require.Nil(t, err, "read")
	assert.Equal(t, testPublicKey, loaded.PublicKey(), "wrong key")
}
