// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockrecord - block header and block envelope
//
// the block id is the hex signature of the validator over the packed
// header; the header carries the ids and merkle root of the batches
package blockrecord
