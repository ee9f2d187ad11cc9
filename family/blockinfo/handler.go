// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockinfo - the block metadata family
//
// each block carries, as its first batch, a record of the previous
// block; the records form a bounded window of recent history readable
// by other families at well known addresses
package blockinfo

import (
	"encoding/hex"
	"time"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/namespace"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// family identification
const (
	FamilyName    = "block_info"
	FamilyVersion = "1.0"
)

// defaults when neither the payload nor the stored config set them
const (
	DefaultTargetCount   = 256
	DefaultSyncTolerance = 300 // seconds
)

// Handler - block_info family
type Handler struct {
	now func() time.Time
}

// New - handler using the system clock
func New() *Handler {
	return &Handler{now: time.Now}
}

// NewWithClock - handler with a fixed clock for tests
func NewWithClock(now func() time.Time) *Handler {
	return &Handler{now: now}
}

// FamilyName - implement family.Handler
func (h *Handler) FamilyName() string { return FamilyName }

// FamilyVersions - implement family.Handler
func (h *Handler) FamilyVersions() []string { return []string{FamilyVersion} }

// Namespaces - implement family.Handler
func (h *Handler) Namespaces() []string { return []string{namespace.BlockInfoNamespace} }

// Apply - validate and store a block record, then prune the window
func (h *Handler) Apply(header *transactionrecord.TransactionHeader, payload []byte, context *state.Context) error {
	p, err := DecodePayload(payload)
	if nil != err {
		return fault.InvalidPayload
	}
	b := p.Block
	if nil == b {
		return fault.InvalidBlockInfo
	}
	if !isSignature(b.PreviousBlockId) || !isSignature(b.HeaderSignature) || !account.ValidPublicKey(b.SignerPublicKey) {
		return fault.InvalidBlockInfo
	}

	configData, found, err := context.Get(namespace.BlockInfoConfigAddress)
	if nil != err {
		return err
	}

	config := &Config{
		LatestBlock:   b.BlockNum,
		OldestBlock:   b.BlockNum,
		TargetCount:   DefaultTargetCount,
		SyncTolerance: DefaultSyncTolerance,
	}
	if found {
		config, err = DecodeConfig(configData)
		if nil != err {
			return fault.InvalidBlockInfo
		}
		if b.BlockNum != config.LatestBlock+1 {
			return fault.BlockNumberMismatch
		}

		previousData, found, err := context.Get(namespace.BlockInfoAddress(config.LatestBlock))
		if nil != err {
			return err
		}
		if !found {
			return fault.InvalidBlockInfo
		}
		previous, err := DecodeBlockInfo(previousData)
		if nil != err {
			return fault.InvalidBlockInfo
		}
		if previous.HeaderSignature != b.PreviousBlockId {
			return fault.InvalidBlockInfo
		}
		if b.Timestamp < previous.Timestamp {
			return fault.InvalidTimestamp
		}
		config.LatestBlock = b.BlockNum
	}

	if p.TargetCount > 0 {
		config.TargetCount = p.TargetCount
	}
	if p.SyncTolerance > 0 {
		config.SyncTolerance = p.SyncTolerance
	}

	if b.Timestamp > uint64(h.now().Unix())+config.SyncTolerance {
		return fault.InvalidTimestamp
	}

	record, err := Encode(b)
	if nil != err {
		return err
	}
	if err := context.Set(namespace.BlockInfoAddress(b.BlockNum), record); nil != err {
		return err
	}

	for config.LatestBlock-config.OldestBlock+1 > config.TargetCount {
		if err := context.Delete(namespace.BlockInfoAddress(config.OldestBlock)); nil != err {
			return err
		}
		config.OldestBlock += 1
	}

	packed, err := Encode(config)
	if nil != err {
		return err
	}
	return context.Set(namespace.BlockInfoConfigAddress, packed)
}

func isSignature(s string) bool {
	if account.SignatureHexLength != len(s) {
		return false
	}
	_, err := hex.DecodeString(s)
	return nil == err
}

// TransactionParameters - everything needed to wrap a record in a
// transaction
//
// zero targetCount or syncTolerance keeps the values already on chain
func TransactionParameters(b *BlockInfo, targetCount uint64, syncTolerance uint64) (*transactionrecord.TransactionParameters, error) {
	payload, err := Encode(&Payload{
		Block:         b,
		TargetCount:   targetCount,
		SyncTolerance: syncTolerance,
	})
	if nil != err {
		return nil, err
	}
	return &transactionrecord.TransactionParameters{
		FamilyName:    FamilyName,
		FamilyVersion: FamilyVersion,
		Inputs:        []string{namespace.BlockInfoNamespace},
		Outputs:       []string{namespace.BlockInfoNamespace},
		Payload:       payload,
	}, nil
}
