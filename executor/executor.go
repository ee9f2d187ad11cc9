// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package executor - run batches against state
//
// a batch is all or nothing: the first transaction that is refused by
// the policy or fails in its family handler invalidates the batch and
// none of its writes survive
//
// consecutive batches whose declared addresses cannot overlap run in
// parallel against the same base state; their changes are then merged
// in arrival order, which gives the same result as running them one
// after another
package executor

import (
	"errors"
	"sync"

	"github.com/bitmark-inc/ledgerd/family"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/namespace"
	"github.com/bitmark-inc/ledgerd/permission"
	"github.com/bitmark-inc/ledgerd/policy"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
	"github.com/bitmark-inc/logger"
)

// Result - outcome of one batch
type Result struct {
	BatchID            string
	Valid              bool
	InvalidTransaction string // id of the failing transaction, if any
	Err                error
	Delta              *state.Delta
}

// Executor - runs batches with a fixed set of family handlers
type Executor struct {
	log      *logger.L
	registry *family.Registry
}

// New - create an executor
func New(registry *family.Registry) *Executor {
	return &Executor{
		log:      logger.New("executor"),
		registry: registry,
	}
}

// a batch prepared for scheduling
type job struct {
	index        int
	batch        *transactionrecord.Batch
	headers      []*transactionrecord.TransactionHeader
	declarations []string
}

// Execute - run batches in order on top of a view
//
// returns a result for every batch and the merged changes of the
// valid ones
func (e *Executor) Execute(view state.View, snapshot *policy.Snapshot, batches []*transactionrecord.Batch) ([]Result, *state.Delta) {
	results := make([]Result, len(batches))
	block := state.NewOverlay(view)

	wave := []*job(nil)
	flush := func() {
		e.runWave(block, snapshot, wave, results)
		wave = nil
	}

	for i, b := range batches {
		results[i].BatchID = b.HeaderSignature

		_, headers, err := transactionrecord.VerifyBatch(b)
		if nil != err {
			e.log.Warnf("batch: %s  verify error: %s", b.HeaderSignature, err)
			results[i].Err = err
			continue
		}

		j := &job{
			index:   i,
			batch:   b,
			headers: headers,
		}
		for _, h := range headers {
			j.declarations = append(j.declarations, h.Inputs...)
			j.declarations = append(j.declarations, h.Outputs...)
		}

		if conflicts(wave, j) {
			flush()
		}
		wave = append(wave, j)
	}
	flush()

	return results, block.Delta()
}

// true if the job could touch an address declared by the wave
func conflicts(wave []*job, j *job) bool {
	for _, w := range wave {
		for _, a := range w.declarations {
			for _, b := range j.declarations {
				if namespace.Overlaps(a, b) {
					return true
				}
			}
		}
	}
	return false
}

// run independent jobs concurrently then merge in order
func (e *Executor) runWave(block *state.Overlay, snapshot *policy.Snapshot, wave []*job, results []Result) {
	if 0 == len(wave) {
		return
	}

	var wg sync.WaitGroup
	for _, j := range wave {
		wg.Add(1)
		go func(j *job) {
			defer wg.Done()
			results[j.index] = e.runBatch(block, snapshot, j)
		}(j)
	}
	wg.Wait()

	for _, j := range wave {
		r := results[j.index]
		if r.Valid {
			block.Apply(r.Delta)
		}
	}
}

func (e *Executor) runBatch(view state.View, snapshot *policy.Snapshot, j *job) Result {
	result := Result{
		BatchID: j.batch.HeaderSignature,
	}
	batch := state.NewOverlay(view)

	for i, header := range j.headers {
		txn := j.batch.Transactions[i]

		err := e.runTransaction(batch, snapshot, header, txn.Payload)
		if nil != err {
			var rejection *permission.Rejection
			switch {
			case errors.As(err, &rejection):
				e.log.Infof("batch: %s  transaction: %s  family: %s  rejected: %s", j.batch.HeaderSignature, txn.HeaderSignature, header.FamilyName, err)
			case fault.DeclaredAccessViolation == err:
				e.log.Errorf("batch: %s  transaction: %s  family: %s  declared access violation", j.batch.HeaderSignature, txn.HeaderSignature, header.FamilyName)
			default:
				e.log.Infof("batch: %s  transaction: %s  family: %s  invalid: %s", j.batch.HeaderSignature, txn.HeaderSignature, header.FamilyName, err)
			}
			result.InvalidTransaction = txn.HeaderSignature
			result.Err = err
			return result
		}
	}

	result.Valid = true
	result.Delta = batch.Delta()
	return result
}

func (e *Executor) runTransaction(batch *state.Overlay, snapshot *policy.Snapshot, header *transactionrecord.TransactionHeader, payload []byte) error {
	if err := permission.Evaluate(header, snapshot); nil != err {
		return err
	}

	handler, err := e.registry.Lookup(header.FamilyName, header.FamilyVersion)
	if nil != err {
		return err
	}

	if !family.Within(handler, header.Inputs) || !family.Within(handler, header.Outputs) {
		return fault.ForeignNamespace
	}

	context := state.NewContext(batch, header.Inputs, header.Outputs)
	if err := handler.Apply(header, payload, context); nil != err {
		return err
	}

	batch.Apply(context.Delta())
	return nil
}
