// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockinfo_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/family/blockinfo"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/namespace"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

const baseTime = 1600000000

var signer = strings.Repeat("5", 64)

func blockID(n uint64) string {
	return fmt.Sprintf("%0128x", n+1)
}

func record(n uint64, timestamp uint64) *blockinfo.BlockInfo {
	previous := strings.Repeat("0", 128)
	if n > 0 {
		previous = blockID(n - 1)
	}
	return &blockinfo.BlockInfo{
		BlockNum:        n,
		PreviousBlockId: previous,
		SignerPublicKey: signer,
		HeaderSignature: blockID(n),
		Timestamp:       timestamp,
	}
}

type chain struct {
	handler *blockinfo.Handler
	view    state.MapView
}

func newChain() *chain {
	clock := func() time.Time { return time.Unix(baseTime+1000, 0) }
	return &chain{
		handler: blockinfo.NewWithClock(clock),
		view:    state.MapView{},
	}
}

func (c *chain) apply(p *blockinfo.Payload) error {
	payload, err := blockinfo.Encode(p)
	if nil != err {
		return err
	}
	ctx := state.NewContext(c.view, []string{namespace.BlockInfoNamespace}, []string{namespace.BlockInfoNamespace})
	if err := c.handler.Apply(&transactionrecord.TransactionHeader{}, payload, ctx); nil != err {
		return err
	}
	for _, change := range ctx.Delta().Changes() {
		if change.Deleted {
			delete(c.view, change.Address)
		} else {
			c.view[change.Address] = change.Value
		}
	}
	return nil
}

func (c *chain) config(t *testing.T) *blockinfo.Config {
	data, ok := c.view[namespace.BlockInfoConfigAddress]
	require.True(t, ok, "config present")
	config, err := blockinfo.DecodeConfig(data)
	require.Nil(t, err, "config decode")
	return config
}

func TestSequence(t *testing.T) {
	c := newChain()
	for n := uint64(0); n < 5; n += 1 {
		require.Nil(t, c.apply(&blockinfo.Payload{Block: record(n, baseTime+n)}), "block %d", n)
	}

	for n := uint64(0); n < 5; n += 1 {
		data, ok := c.view[namespace.BlockInfoAddress(n)]
		require.True(t, ok, "record %d", n)
		b, err := blockinfo.DecodeBlockInfo(data)
		require.Nil(t, err, "decode %d", n)
		assert.Equal(t, n, b.BlockNum, "block number")
	}

	config := c.config(t)
	assert.Equal(t, uint64(4), config.LatestBlock, "latest")
	assert.Equal(t, uint64(0), config.OldestBlock, "oldest")
	assert.Equal(t, uint64(blockinfo.DefaultTargetCount), config.TargetCount, "target")
}

func TestPruning(t *testing.T) {
	c := newChain()
	require.Nil(t, c.apply(&blockinfo.Payload{Block: record(0, baseTime), TargetCount: 2}), "block 0")
	for n := uint64(1); n < 4; n += 1 {
		require.Nil(t, c.apply(&blockinfo.Payload{Block: record(n, baseTime+n)}), "block %d", n)
	}

	config := c.config(t)
	assert.Equal(t, uint64(3), config.LatestBlock, "latest")
	assert.Equal(t, uint64(2), config.OldestBlock, "oldest")

	_, ok := c.view[namespace.BlockInfoAddress(1)]
	assert.False(t, ok, "pruned")
	_, ok = c.view[namespace.BlockInfoAddress(2)]
	assert.True(t, ok, "kept")
}

func TestInvalid(t *testing.T) {
	c := newChain()
	require.Nil(t, c.apply(&blockinfo.Payload{Block: record(0, baseTime)}), "block 0")

	assert.Equal(t, fault.BlockNumberMismatch, c.apply(&blockinfo.Payload{Block: record(2, baseTime)}), "gap")

	b := record(1, baseTime)
	b.PreviousBlockId = blockID(7)
	assert.Equal(t, fault.InvalidBlockInfo, c.apply(&blockinfo.Payload{Block: b}), "wrong previous")

	assert.Equal(t, fault.InvalidTimestamp, c.apply(&blockinfo.Payload{Block: record(1, baseTime-1)}), "time went backwards")
	assert.Equal(t, fault.InvalidTimestamp, c.apply(&blockinfo.Payload{Block: record(1, baseTime+5000)}), "too far ahead")

	b = record(1, baseTime)
	b.SignerPublicKey = "xyz"
	assert.Equal(t, fault.InvalidBlockInfo, c.apply(&blockinfo.Payload{Block: b}), "bad signer")

	assert.Equal(t, fault.InvalidBlockInfo, c.apply(&blockinfo.Payload{}), "no block")
	assert.Nil(t, c.apply(&blockinfo.Payload{Block: record(1, baseTime)}), "valid after failures")
}

func TestUndeclaredAccess(t *testing.T) {
	payload, err := blockinfo.Encode(&blockinfo.Payload{Block: record(0, baseTime)})
	require.Nil(t, err, "encode")
	ctx := state.NewContext(state.MapView{}, []string{namespace.BlockInfoNamespace}, []string{namespace.BlockInfoConfigAddress})
	err = blockinfo.New().Apply(&transactionrecord.TransactionHeader{}, payload, ctx)
	assert.Equal(t, fault.DeclaredAccessViolation, err, "record address not declared")
}

func TestTransactionParameters(t *testing.T) {
	p, err := blockinfo.TransactionParameters(record(3, baseTime), 10, 0)
	require.Nil(t, err, "parameters")
	assert.Equal(t, blockinfo.FamilyName, p.FamilyName, "family")
	assert.Equal(t, []string{namespace.BlockInfoNamespace}, p.Outputs, "outputs")

	decoded, err := blockinfo.DecodePayload(p.Payload)
	require.Nil(t, err, "decode")
	assert.Equal(t, uint64(3), decoded.Block.BlockNum, "block number")
	assert.Equal(t, uint64(10), decoded.TargetCount, "target count")
}
