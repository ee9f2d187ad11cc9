// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - ed25519 signing keys
//
// public keys travel as lowercase hex strings inside transaction and
// batch headers; signatures are the raw 64 byte ed25519 signature
// rendered as hex and double as record identifiers
package account
