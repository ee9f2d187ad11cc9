// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package executor_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/executor"
	"github.com/bitmark-inc/ledgerd/family"
	"github.com/bitmark-inc/ledgerd/family/intkey"
	"github.com/bitmark-inc/ledgerd/family/xo"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/fixtures"
	"github.com/bitmark-inc/ledgerd/namespace"
	"github.com/bitmark-inc/ledgerd/policy"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

type testEnv struct {
	key      *account.PrivateKey
	exec     *executor.Executor
	snapshot *policy.Snapshot
}

func setup(t *testing.T) (*testEnv, func()) {
	fixtures.SetupTestLogger()

	key, err := account.NewPrivateKey()
	require.Nil(t, err, "key")

	snapshot, err := policy.NewSnapshot(0, []policy.Rule{
		{Namespace: namespace.Prefix(intkey.FamilyName), Mode: policy.DenyAll},
		{Namespace: namespace.Prefix(xo.FamilyName), Mode: policy.AllowSigners, Signers: []string{key.PublicKey()}},
	})
	require.Nil(t, err, "snapshot")

	env := &testEnv{
		key:      key,
		exec:     executor.New(family.NewRegistry(intkey.New(), xo.New())),
		snapshot: snapshot,
	}
	return env, fixtures.TeardownTestLogger
}

func (env *testEnv) batch(t *testing.T, signer *account.PrivateKey, parameters ...*transactionrecord.TransactionParameters) *transactionrecord.Batch {
	txns := []*transactionrecord.Transaction{}
	for _, p := range parameters {
		txn, err := transactionrecord.NewTransaction(signer, p)
		require.Nil(t, err, "transaction")
		txns = append(txns, txn)
	}
	b, err := transactionrecord.NewBatch(signer, txns)
	require.Nil(t, err, "batch")
	return b
}

func xoAction(t *testing.T, name string, action string, space int) *transactionrecord.TransactionParameters {
	p, err := xo.TransactionParameters(name, action, space)
	require.Nil(t, err, "xo parameters")
	return p
}

func intkeySet(t *testing.T, name string) *transactionrecord.TransactionParameters {
	p, err := intkey.TransactionParameters(intkey.Set, name, 1)
	require.Nil(t, err, "intkey parameters")
	return p
}

func TestPermissionAndOrdering(t *testing.T) {
	env, teardown := setup(t)
	defer teardown()

	batches := []*transactionrecord.Batch{
		env.batch(t, env.key, xoAction(t, "g1", xo.Create, 0)),
		env.batch(t, env.key, intkeySet(t, "a")),
		env.batch(t, env.key, xoAction(t, "g1", xo.Take, 5)),
	}

	results, delta := env.exec.Execute(state.MapView{}, env.snapshot, batches)
	require.Equal(t, 3, len(results), "results")

	assert.True(t, results[0].Valid, "create")
	assert.False(t, results[1].Valid, "intkey denied")
	assert.True(t, errors.Is(results[1].Err, fault.NamespaceDenied), "denied error: %v", results[1].Err)
	assert.Equal(t, batches[1].Transactions[0].HeaderSignature, results[1].InvalidTransaction, "failing transaction")
	assert.True(t, results[2].Valid, "take sees create")

	assert.False(t, delta.Touches(intkey.Address("a")), "no intkey state")
	value, _, found := delta.Lookup(xo.Address("g1"))
	require.True(t, found, "game stored")
	assert.Contains(t, string(value), "----X----", "move applied")
}

func TestBatchIsAtomic(t *testing.T) {
	env, teardown := setup(t)
	defer teardown()

	batches := []*transactionrecord.Batch{
		env.batch(t, env.key,
			xoAction(t, "g2", xo.Create, 0),
			xoAction(t, "g2", xo.Take, 1),
			xoAction(t, "g2", xo.Take, 1), // occupied
		),
	}
	results, delta := env.exec.Execute(state.MapView{}, env.snapshot, batches)
	assert.False(t, results[0].Valid, "batch invalid")
	assert.Equal(t, fault.SpaceOccupied, results[0].Err, "reason")
	assert.Equal(t, batches[0].Transactions[2].HeaderSignature, results[0].InvalidTransaction, "third transaction")
	assert.Equal(t, 0, delta.Len(), "no partial writes")
}

func TestUnauthorisedSigner(t *testing.T) {
	env, teardown := setup(t)
	defer teardown()

	other, err := account.NewPrivateKey()
	require.Nil(t, err, "key")

	results, delta := env.exec.Execute(state.MapView{}, env.snapshot, []*transactionrecord.Batch{
		env.batch(t, other, xoAction(t, "g3", xo.Create, 0)),
	})
	assert.True(t, errors.Is(results[0].Err, fault.SignerNotAuthorized), "not authorised: %v", results[0].Err)
	assert.Equal(t, 0, delta.Len(), "nothing written")
}

func TestDeclaredAccessViolation(t *testing.T) {
	env, teardown := setup(t)
	defer teardown()

	p := xoAction(t, "g4", xo.Create, 0)
	p.Outputs = []string{xo.Address("other-game")}

	results, _ := env.exec.Execute(state.MapView{}, env.snapshot, []*transactionrecord.Batch{env.batch(t, env.key, p)})
	assert.Equal(t, fault.DeclaredAccessViolation, results[0].Err, "violation")
}

func TestDeclarationOutsideFamily(t *testing.T) {
	env, teardown := setup(t)
	defer teardown()

	p := xoAction(t, "g7", xo.Create, 0)
	p.Inputs = append(p.Inputs, namespace.PolicyAddress)
	p.Outputs = append(p.Outputs, namespace.PolicyAddress)

	results, delta := env.exec.Execute(state.MapView{}, env.snapshot, []*transactionrecord.Batch{env.batch(t, env.key, p)})
	require.Equal(t, 1, len(results), "results")
	assert.False(t, results[0].Valid, "rejected")
	assert.Equal(t, fault.ForeignNamespace, results[0].Err, "foreign namespace")
	assert.Equal(t, 0, delta.Len(), "nothing written")
}

func TestUnknownFamilyAndBadSignature(t *testing.T) {
	env, teardown := setup(t)
	defer teardown()

	unknown := &transactionrecord.TransactionParameters{
		FamilyName:    "smallbank",
		FamilyVersion: "1.0",
		Payload:       []byte{1},
	}
	forged := env.batch(t, env.key, xoAction(t, "g5", xo.Create, 0))
	forged.HeaderSignature = env.batch(t, env.key, xoAction(t, "g6", xo.Create, 0)).HeaderSignature

	results, _ := env.exec.Execute(state.MapView{}, env.snapshot, []*transactionrecord.Batch{
		env.batch(t, env.key, unknown),
		forged,
	})
	assert.Equal(t, fault.UnknownFamily, results[0].Err, "unknown family")
	assert.Equal(t, fault.SignatureInvalid, results[1].Err, "forged")
}

func TestParallelMatchesSequential(t *testing.T) {
	env, teardown := setup(t)
	defer teardown()

	batches := []*transactionrecord.Batch{}
	for i := 0; i < 8; i += 1 {
		name := fmt.Sprintf("p%d", i%3)
		action := xo.Create
		space := 0
		if i >= 3 {
			action = xo.Take
			space = i
		}
		batches = append(batches, env.batch(t, env.key, xoAction(t, name, action, space)))
	}

	_, together := env.exec.Execute(state.MapView{}, env.snapshot, batches)

	view := state.MapView{}
	for _, b := range batches {
		_, d := env.exec.Execute(view, env.snapshot, []*transactionrecord.Batch{b})
		for _, c := range d.Changes() {
			view[c.Address] = c.Value
		}
	}
	sequential := state.NewDelta()
	for a, v := range view {
		sequential.Set(a, v)
	}

	assert.Equal(t, sequential.Digest(), together.Digest(), "same final state")
}
