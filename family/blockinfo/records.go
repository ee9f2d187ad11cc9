// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockinfo

import (
	proto "github.com/gogo/protobuf/proto"
)

// the message structs below follow blockinfo.proto field for field

// BlockInfo - record of one block, stored at its block number address
type BlockInfo struct {
	BlockNum        uint64 `protobuf:"varint,1,opt,name=block_num,json=blockNum,proto3" json:"block_num"`
	PreviousBlockId string `protobuf:"bytes,2,opt,name=previous_block_id,json=previousBlockId,proto3" json:"previous_block_id"`
	SignerPublicKey string `protobuf:"bytes,3,opt,name=signer_public_key,json=signerPublicKey,proto3" json:"signer_public_key"`
	HeaderSignature string `protobuf:"bytes,4,opt,name=header_signature,json=headerSignature,proto3" json:"header_signature"`
	Timestamp       uint64 `protobuf:"varint,5,opt,name=timestamp,proto3" json:"timestamp"`
}

func (m *BlockInfo) Reset()         { *m = BlockInfo{} }
func (m *BlockInfo) String() string { return proto.CompactTextString(m) }
func (*BlockInfo) ProtoMessage()    {}

// Config - retention window, stored at the configuration address
type Config struct {
	LatestBlock   uint64 `protobuf:"varint,1,opt,name=latest_block,json=latestBlock,proto3" json:"latest_block"`
	OldestBlock   uint64 `protobuf:"varint,2,opt,name=oldest_block,json=oldestBlock,proto3" json:"oldest_block"`
	TargetCount   uint64 `protobuf:"varint,3,opt,name=target_count,json=targetCount,proto3" json:"target_count"`
	SyncTolerance uint64 `protobuf:"varint,4,opt,name=sync_tolerance,json=syncTolerance,proto3" json:"sync_tolerance"`
}

func (m *Config) Reset()         { *m = Config{} }
func (m *Config) String() string { return proto.CompactTextString(m) }
func (*Config) ProtoMessage()    {}

// Payload - the transaction payload
//
// zero target_count or sync_tolerance keeps the current setting
type Payload struct {
	Block         *BlockInfo `protobuf:"bytes,1,opt,name=block,proto3" json:"block"`
	TargetCount   uint64     `protobuf:"varint,2,opt,name=target_count,json=targetCount,proto3" json:"target_count"`
	SyncTolerance uint64     `protobuf:"varint,3,opt,name=sync_tolerance,json=syncTolerance,proto3" json:"sync_tolerance"`
}

func (m *Payload) Reset()         { *m = Payload{} }
func (m *Payload) String() string { return proto.CompactTextString(m) }
func (*Payload) ProtoMessage()    {}

// Encode - pack any of the records
func Encode(m proto.Message) ([]byte, error) {
	return proto.Marshal(m)
}

// DecodeBlockInfo - unpack a stored block record
func DecodeBlockInfo(data []byte) (*BlockInfo, error) {
	b := &BlockInfo{}
	if err := proto.Unmarshal(data, b); nil != err {
		return nil, err
	}
	return b, nil
}

// DecodeConfig - unpack the stored configuration
func DecodeConfig(data []byte) (*Config, error) {
	c := &Config{}
	if err := proto.Unmarshal(data, c); nil != err {
		return nil, err
	}
	return c, nil
}

// DecodePayload - unpack a transaction payload
func DecodePayload(data []byte) (*Payload, error) {
	p := &Payload{}
	if err := proto.Unmarshal(data, p); nil != err {
		return nil, err
	}
	return p, nil
}
