// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"encoding/binary"

	"github.com/bitmark-inc/ledgerd/blockrecord"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/storage"
)

// Get - block by number
func Get(number uint64) (*blockrecord.Block, error) {
	packed := storage.Pool.Blocks.Get(numberKey(number))
	if nil == packed {
		return nil, fault.BlockNotFound
	}
	return blockrecord.Unpack(packed)
}

// GetByID - block by id
func GetByID(id string) (*blockrecord.Block, error) {
	n, ok := storage.Pool.BlockIndex.GetN([]byte(id))
	if !ok {
		return nil, fault.BlockNotFound
	}
	return Get(n)
}

// BatchBlock - number of the block containing a batch
func BatchBlock(batchID string) (uint64, bool) {
	return storage.Pool.BatchIndex.GetN([]byte(batchID))
}

// List - up to count blocks, newest first, starting at a block number
//
// nil start means the head
func List(start *uint64, count int) ([]*blockrecord.Block, error) {
	if count <= 0 {
		return nil, fault.InvalidCount
	}

	head, _, ok := Head()
	if !ok {
		return nil, nil
	}
	from := head
	if nil != start {
		if *start > head {
			return nil, fault.BlockNotFound
		}
		from = *start
	}

	items, err := storage.Pool.Blocks.NewFetchCursor().FetchReverse(count, numberKey(from))
	if nil != err {
		return nil, err
	}

	blocks := make([]*blockrecord.Block, 0, len(items))
	for _, item := range items {
		blk, err := blockrecord.Unpack(item.Value)
		if nil != err {
			globalData.log.Errorf("block: %d  unpack error: %s", binary.BigEndian.Uint64(item.Key), err)
			return nil, err
		}
		blocks = append(blocks, blk)
	}
	return blocks, nil
}
