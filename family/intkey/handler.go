// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package intkey - integer key/value family
//
// payloads and state are CBOR; the state at an address is a map of
// name to value so that names whose addresses collide can coexist
package intkey

import (
	"github.com/ugorji/go/codec"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/namespace"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// family identification
const (
	FamilyName    = "intkey"
	FamilyVersion = "1.0"
)

// limits
const (
	MaxNameLength = 20
	MaxValue      = 1<<32 - 1
)

// verbs
const (
	Set       = "set"
	Increment = "inc"
	Decrement = "dec"
)

// Payload - one operation
type Payload struct {
	Verb  string `codec:"Verb"`
	Name  string `codec:"Name"`
	Value uint64 `codec:"Value"`
}

var cborHandle = func() *codec.CborHandle {
	h := &codec.CborHandle{}
	h.Canonical = true
	return h
}()

func encode(v interface{}) ([]byte, error) {
	buffer := []byte{}
	err := codec.NewEncoderBytes(&buffer, cborHandle).Encode(v)
	return buffer, err
}

func decode(data []byte, v interface{}) error {
	return codec.NewDecoderBytes(data, cborHandle).Decode(v)
}

// EncodePayload - pack a payload
func EncodePayload(p *Payload) ([]byte, error) {
	return encode(p)
}

// DecodeState - the name/value map stored at an address
func DecodeState(data []byte) (map[string]uint64, error) {
	values := make(map[string]uint64)
	if err := decode(data, &values); nil != err {
		return nil, err
	}
	return values, nil
}

// Address - state address of a name
func Address(name string) string {
	return namespace.KeyAddress(FamilyName, name)
}

// Handler - intkey family
type Handler struct{}

// New - create handler
func New() *Handler {
	return &Handler{}
}

// FamilyName - implement family.Handler
func (h *Handler) FamilyName() string { return FamilyName }

// FamilyVersions - implement family.Handler
func (h *Handler) FamilyVersions() []string { return []string{FamilyVersion} }

// Namespaces - implement family.Handler
func (h *Handler) Namespaces() []string { return []string{namespace.Prefix(FamilyName)} }

// Apply - execute one set/inc/dec
func (h *Handler) Apply(header *transactionrecord.TransactionHeader, payload []byte, context *state.Context) error {
	p := &Payload{}
	if err := decode(payload, p); nil != err {
		return fault.InvalidPayload
	}
	if err := p.validate(); nil != err {
		return err
	}

	address := Address(p.Name)
	values := make(map[string]uint64)
	data, found, err := context.Get(address)
	if nil != err {
		return err
	}
	if found {
		values, err = DecodeState(data)
		if nil != err {
			return fault.InvalidPayload
		}
	}

	current, exists := values[p.Name]
	switch p.Verb {
	case Set:
		if exists {
			return fault.IntkeyNameExists
		}
		values[p.Name] = p.Value
	case Increment:
		if !exists {
			return fault.IntkeyNameNotFound
		}
		if current+p.Value > MaxValue {
			return fault.InvalidIntkeyValue
		}
		values[p.Name] = current + p.Value
	case Decrement:
		if !exists {
			return fault.IntkeyNameNotFound
		}
		if p.Value > current {
			return fault.InvalidIntkeyValue
		}
		values[p.Name] = current - p.Value
	}

	packed, err := encode(values)
	if nil != err {
		return err
	}
	return context.Set(address, packed)
}

func (p *Payload) validate() error {
	switch p.Verb {
	case Set, Increment, Decrement:
	default:
		return fault.InvalidIntkeyVerb
	}
	if 0 == len(p.Name) || len(p.Name) > MaxNameLength {
		return fault.InvalidIntkeyName
	}
	if p.Value > MaxValue {
		return fault.InvalidIntkeyValue
	}
	return nil
}

// TransactionParameters - wrap an operation for submission
func TransactionParameters(verb string, name string, value uint64) (*transactionrecord.TransactionParameters, error) {
	p := &Payload{Verb: verb, Name: name, Value: value}
	if err := p.validate(); nil != err {
		return nil, err
	}
	payload, err := EncodePayload(p)
	if nil != err {
		return nil, err
	}
	address := Address(name)
	return &transactionrecord.TransactionParameters{
		FamilyName:    FamilyName,
		FamilyVersion: FamilyVersion,
		Inputs:        []string{address},
		Outputs:       []string{address},
		Payload:       payload,
	}, nil
}
