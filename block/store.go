// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"encoding/binary"

	"github.com/bitmark-inc/ledgerd/blockrecord"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/messagebus"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/storage"
)

// Store - append a block and its state changes
//
// the block must extend the current head
func Store(blk *blockrecord.Block, delta *state.Delta) error {
	header, err := blk.Verify()
	if nil != err {
		return err
	}

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	expected := uint64(0)
	if !globalData.empty {
		expected = globalData.height + 1
	}
	if header.BlockNum != expected {
		globalData.log.Errorf("block number: %d  expected: %d", header.BlockNum, expected)
		return fault.BlockNumberMismatch
	}
	if header.PreviousBlockId != globalData.headID {
		globalData.log.Errorf("block: %d  previous: %s  head: %s", header.BlockNum, header.PreviousBlockId, globalData.headID)
		return fault.InvalidChainHead
	}

	packed, err := blk.Pack()
	if nil != err {
		return err
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	key := numberKey(header.BlockNum)
	trx.Put(storage.Pool.Blocks, key, packed)
	trx.Put(storage.Pool.BlockIndex, []byte(blk.HeaderSignature), key)
	for _, b := range blk.Batches {
		if n, found := trx.GetN(storage.Pool.BatchIndex, []byte(b.HeaderSignature)); found {
			trx.Abort()
			globalData.log.Errorf("block: %d  batch: %s  already in block: %d", header.BlockNum, b.HeaderSignature, n)
			if n == header.BlockNum {
				return fault.DuplicateBatchInBlock
			}
			return fault.BatchAlreadyCommitted
		}
		trx.Put(storage.Pool.BatchIndex, []byte(b.HeaderSignature), key)
	}
	if nil != delta {
		storage.PutDelta(trx, delta)
	}

	if err := trx.Commit(); nil != err {
		globalData.log.Criticalf("block: %d  commit error: %s", header.BlockNum, err)
		return err
	}

	globalData.empty = false
	globalData.height = header.BlockNum
	globalData.headID = blk.HeaderSignature

	globalData.log.Infof("stored block: %d  id: %s  batches: %d", header.BlockNum, blk.HeaderSignature, len(blk.Batches))

	messagebus.Bus.Broadcast.Send("block", []byte(blk.HeaderSignature), key)
	return nil
}

func numberKey(n uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, n)
	return key
}
