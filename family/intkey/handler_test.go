// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package intkey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/family/intkey"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

func apply(t *testing.T, view state.MapView, verb string, name string, value uint64) error {
	payload, err := intkey.EncodePayload(&intkey.Payload{Verb: verb, Name: name, Value: value})
	require.Nil(t, err, "encode")
	address := intkey.Address(name)
	ctx := state.NewContext(view, []string{address}, []string{address})
	if err := intkey.New().Apply(&transactionrecord.TransactionHeader{}, payload, ctx); nil != err {
		return err
	}
	for _, c := range ctx.Delta().Changes() {
		view[c.Address] = c.Value
	}
	return nil
}

func value(t *testing.T, view state.MapView, name string) uint64 {
	data, ok := view[intkey.Address(name)]
	require.True(t, ok, "state for %s", name)
	values, err := intkey.DecodeState(data)
	require.Nil(t, err, "decode state")
	return values[name]
}

func TestSetIncDec(t *testing.T) {
	view := state.MapView{}

	require.Nil(t, apply(t, view, intkey.Set, "a", 10), "set")
	assert.Equal(t, uint64(10), value(t, view, "a"), "after set")

	require.Nil(t, apply(t, view, intkey.Increment, "a", 5), "inc")
	assert.Equal(t, uint64(15), value(t, view, "a"), "after inc")

	require.Nil(t, apply(t, view, intkey.Decrement, "a", 15), "dec")
	assert.Equal(t, uint64(0), value(t, view, "a"), "after dec")
}

func TestErrors(t *testing.T) {
	view := state.MapView{}
	require.Nil(t, apply(t, view, intkey.Set, "a", intkey.MaxValue), "set max")

	assert.Equal(t, fault.IntkeyNameExists, apply(t, view, intkey.Set, "a", 1), "set twice")
	assert.Equal(t, fault.IntkeyNameNotFound, apply(t, view, intkey.Increment, "b", 1), "inc missing")
	assert.Equal(t, fault.InvalidIntkeyValue, apply(t, view, intkey.Increment, "a", 1), "overflow")
	assert.Equal(t, fault.InvalidIntkeyValue, apply(t, view, intkey.Decrement, "a", intkey.MaxValue+1), "value too large")
	assert.Equal(t, fault.InvalidIntkeyVerb, apply(t, view, "mul", "a", 1), "verb")
	assert.Equal(t, fault.InvalidIntkeyName, apply(t, view, intkey.Set, "abcdefghijklmnopqrstu", 1), "long name")
	assert.Equal(t, fault.InvalidIntkeyName, apply(t, view, intkey.Set, "", 1), "empty name")
	assert.Equal(t, uint64(intkey.MaxValue), value(t, view, "a"), "unchanged")
}

func TestBadPayload(t *testing.T) {
	address := intkey.Address("a")
	ctx := state.NewContext(state.MapView{}, []string{address}, []string{address})
	err := intkey.New().Apply(&transactionrecord.TransactionHeader{}, []byte{0x1b}, ctx)
	assert.Equal(t, fault.InvalidPayload, err, "garbage")
}

func TestTransactionParameters(t *testing.T) {
	p, err := intkey.TransactionParameters(intkey.Set, "c", 3)
	require.Nil(t, err, "parameters")
	assert.Equal(t, intkey.FamilyName, p.FamilyName, "family")
	assert.Equal(t, []string{intkey.Address("c")}, p.Inputs, "inputs")

	_, err = intkey.TransactionParameters("bad", "c", 3)
	assert.Equal(t, fault.InvalidIntkeyVerb, err, "verb")
}
