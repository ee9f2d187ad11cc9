// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package settings - on-chain namespace policy updates
//
// the whole policy is replaced by each transaction; who may submit one
// is itself decided by the policy rule covering the settings namespace
package settings

import (
	"github.com/bitmark-inc/ledgerd/namespace"
	"github.com/bitmark-inc/ledgerd/policy"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// family identification
const (
	FamilyName    = "settings"
	FamilyVersion = "1.0"
)

// Handler - settings family
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
func (h *Handler) Namespaces() []string { return []string{namespace.SettingsNamespace} }

// Apply - validate the proposed policy and store it
func (h *Handler) Apply(header *transactionrecord.TransactionHeader, payload []byte, context *state.Context) error {
	snapshot, err := policy.DecodeSnapshot(0, payload)
	if nil != err {
		return err
	}
	packed, err := policy.Encode(snapshot.Rules())
	if nil != err {
		return err
	}
	return context.Set(namespace.PolicyAddress, packed)
}

// TransactionParameters - wrap a policy for submission
func TransactionParameters(rules []policy.Rule) (*transactionrecord.TransactionParameters, error) {
	snapshot, err := policy.NewSnapshot(0, rules)
	if nil != err {
		return nil, err
	}
	payload, err := policy.Encode(snapshot.Rules())
	if nil != err {
		return nil, err
	}
	return &transactionrecord.TransactionParameters{
		FamilyName:    FamilyName,
		FamilyVersion: FamilyVersion,
		Inputs:        []string{namespace.PolicyAddress},
		Outputs:       []string{namespace.PolicyAddress},
		Payload:       payload,
	}, nil
}
