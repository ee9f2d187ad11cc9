// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord

import (
	"encoding/hex"

	proto "github.com/golang/protobuf/proto"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// NewBlock - fill in the batch fields of the header, then sign it
func NewBlock(signer account.Signer, header *Header, batches []*transactionrecord.Batch) (*Block, error) {
	ids := make([]string, len(batches))
	for i, b := range batches {
		ids[i] = b.HeaderSignature
	}
	header.BatchIds = ids
	header.BatchRoot = merkle.RootOfStrings(ids).String()
	header.SignerPublicKey = signer.PublicKey()

	packed, err := proto.Marshal(header)
	if nil != err {
		return nil, err
	}
	signature, err := signer.Sign(packed)
	if nil != err {
		return nil, err
	}

	return &Block{
		Header:          packed,
		HeaderSignature: hex.EncodeToString(signature),
		Batches:         batches,
	}, nil
}

// Pack - encode a block for storage
func (m *Block) Pack() ([]byte, error) {
	return proto.Marshal(m)
}

// Unpack - decode a stored block
func Unpack(data []byte) (*Block, error) {
	block := &Block{}
	if err := proto.Unmarshal(data, block); nil != err {
		return nil, err
	}
	return block, nil
}

// UnpackHeader - decode the header without verification
func (m *Block) UnpackHeader() (*Header, error) {
	header := &Header{}
	if err := proto.Unmarshal(m.Header, header); nil != err {
		return nil, err
	}
	return header, nil
}

// Verify - check the block signature and batch linkage
func (m *Block) Verify() (*Header, error) {
	header, err := m.UnpackHeader()
	if nil != err {
		return nil, err
	}
	if err := account.Verify(header.SignerPublicKey, m.Header, m.HeaderSignature); nil != err {
		return nil, err
	}
	if len(header.BatchIds) != len(m.Batches) {
		return nil, fault.TransactionIdMismatch
	}
	for i, b := range m.Batches {
		if b.HeaderSignature != header.BatchIds[i] {
			return nil, fault.TransactionIdMismatch
		}
	}
	if merkle.RootOfStrings(header.BatchIds).String() != header.BatchRoot {
		return nil, fault.InvalidChainHead
	}
	return header, nil
}

// BlockJSON - block with decoded headers
type BlockJSON struct {
	Header          *Header                        `json:"header"`
	HeaderSignature string                         `json:"header_signature"`
	Batches         []*transactionrecord.BatchJSON `json:"batches"`
}

// JSON - expand a block for display
func (m *Block) JSON() (*BlockJSON, error) {
	header, err := m.UnpackHeader()
	if nil != err {
		return nil, err
	}
	result := &BlockJSON{
		Header:          header,
		HeaderSignature: m.HeaderSignature,
		Batches:         make([]*transactionrecord.BatchJSON, len(m.Batches)),
	}
	for i, b := range m.Batches {
		result.Batches[i], err = b.JSON()
		if nil != err {
			return nil, err
		}
	}
	return result, nil
}
