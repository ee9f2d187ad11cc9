// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package block - the committed chain
//
// blocks are appended in number order, each one together with the
// state changes it makes, in a single storage transaction
package block

import (
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/ledgerd/blockrecord"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/logger"
)

// globals for the chain head
type blockData struct {
	sync.RWMutex // to allow locking

	log *logger.L

	empty  bool   // no blocks stored
	height uint64 // number of the newest block
	headID string // and its id

	// set once during initialise
	initialised bool
}

// global data
var globalData blockData

// Initialise - load the chain head from storage
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("block")
	globalData.log.Info("starting…")

	// check storage is initialised
	if nil == storage.Pool.Blocks {
		globalData.log.Critical("storage pool is not initialised")
		return fault.NotInitialised
	}

	globalData.empty = true
	globalData.height = 0
	globalData.headID = blockrecord.GenesisPreviousBlockID

	if last, ok := storage.Pool.Blocks.LastElement(); ok {
		blk, err := blockrecord.Unpack(last.Value)
		if nil != err {
			globalData.log.Criticalf("failed to unpack block: %d from storage  error: %s", binary.BigEndian.Uint64(last.Key), err)
			return err
		}
		header, err := blk.UnpackHeader()
		if nil != err {
			return err
		}
		globalData.empty = false
		globalData.height = header.BlockNum
		globalData.headID = blk.HeaderSignature
		globalData.log.Infof("head: %d  id: %s", header.BlockNum, blk.HeaderSignature)
	}

	globalData.initialised = true
	return nil
}

// Finalise - shutdown
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.initialised = false
	globalData.log.Info("finished")
	return nil
}

// Head - newest block number and id
//
// ok is false for an empty chain; the id is then the genesis previous id
func Head() (number uint64, id string, ok bool) {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.height, globalData.headID, !globalData.empty
}

// NextNumber - number the next block must carry
func NextNumber() uint64 {
	globalData.RLock()
	defer globalData.RUnlock()
	if globalData.empty {
		return 0
	}
	return globalData.height + 1
}
