// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord

import (
	"strings"

	proto "github.com/golang/protobuf/proto"

	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// GenesisPreviousBlockID - previous block id recorded in block zero
var GenesisPreviousBlockID = strings.Repeat("0", 128)

// the message structs below follow blockrecord.proto field for field

// Header - the signed part of a block
type Header struct {
	BlockNum        uint64   `protobuf:"varint,1,opt,name=block_num,json=blockNum,proto3" json:"block_num,string"`
	PreviousBlockId string   `protobuf:"bytes,2,opt,name=previous_block_id,json=previousBlockId,proto3" json:"previous_block_id"`
	SignerPublicKey string   `protobuf:"bytes,3,opt,name=signer_public_key,json=signerPublicKey,proto3" json:"signer_public_key"`
	BatchIds        []string `protobuf:"bytes,4,rep,name=batch_ids,json=batchIds,proto3" json:"batch_ids"`
	BatchRoot       string   `protobuf:"bytes,5,opt,name=batch_root,json=batchRoot,proto3" json:"batch_root"`
	StateHash       string   `protobuf:"bytes,6,opt,name=state_hash,json=stateHash,proto3" json:"state_hash"`
	Timestamp       uint64   `protobuf:"varint,7,opt,name=timestamp,proto3" json:"timestamp,string"`
}

func (m *Header) Reset()         { *m = Header{} }
func (m *Header) String() string { return proto.CompactTextString(m) }
func (*Header) ProtoMessage()    {}

// Block - header bytes, the block id and the ordered batches
type Block struct {
	Header          []byte                     `protobuf:"bytes,1,opt,name=header,proto3" json:"header"`
	HeaderSignature string                     `protobuf:"bytes,2,opt,name=header_signature,json=headerSignature,proto3" json:"header_signature"`
	Batches         []*transactionrecord.Batch `protobuf:"bytes,3,rep,name=batches,proto3" json:"batches"`
}

func (m *Block) Reset()         { *m = Block{} }
func (m *Block) String() string { return proto.CompactTextString(m) }
func (*Block) ProtoMessage()    {}
