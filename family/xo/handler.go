// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package xo - tic-tac-toe family
//
// payload is the text "name,action,space"; games whose addresses
// collide are stored together, separated by "|"
package xo

import (
	"strconv"
	"strings"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/namespace"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// family identification
const (
	FamilyName    = "xo"
	FamilyVersion = "1.0"
)

// actions
const (
	Create = "create"
	Take   = "take"
	Delete = "delete"
)

// Action - decoded payload
type Action struct {
	Name   string
	Action string
	Space  int
}

// Address - state address of a game
func Address(name string) string {
	return namespace.NameAddress(FamilyName, name)
}

// ParseAction - decode and check a payload
func ParseAction(payload []byte) (*Action, error) {
	f := strings.Split(string(payload), ",")
	if 3 != len(f) {
		return nil, fault.InvalidPayload
	}
	a := &Action{
		Name:   f[0],
		Action: f[1],
	}
	if "" == a.Name || strings.ContainsAny(a.Name, "|,") {
		return nil, fault.InvalidGameName
	}

	switch a.Action {
	case Create, Delete:
	case Take:
		space, err := strconv.Atoi(f[2])
		if nil != err || space < 1 || space > 9 {
			return nil, fault.InvalidGameSpace
		}
		a.Space = space
	default:
		return nil, fault.InvalidGameAction
	}
	return a, nil
}

// Handler - xo family
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

// Apply - execute one game action for the transaction signer
func (h *Handler) Apply(header *transactionrecord.TransactionHeader, payload []byte, context *state.Context) error {
	a, err := ParseAction(payload)
	if nil != err {
		return err
	}

	address := Address(a.Name)
	data, _, err := context.Get(address)
	if nil != err {
		return err
	}
	games, err := decodeGames(data)
	if nil != err {
		return err
	}

	game, exists := games[a.Name]
	switch a.Action {
	case Create:
		if exists {
			return fault.GameAlreadyExists
		}
		games[a.Name] = NewGame(a.Name)

	case Take:
		if !exists {
			return fault.GameNotFound
		}
		if err := game.Take(a.Space, header.SignerPublicKey); nil != err {
			return err
		}

	case Delete:
		if !exists {
			return fault.GameNotFound
		}
		delete(games, a.Name)
	}

	if 0 == len(games) {
		return context.Delete(address)
	}
	return context.Set(address, encodeGames(games))
}

// Games - decode the games stored at an address
func Games(data []byte) ([]*Game, error) {
	games, err := decodeGames(data)
	if nil != err {
		return nil, err
	}
	result := make([]*Game, 0, len(games))
	for _, g := range games {
		result = append(result, g)
	}
	return result, nil
}

// TransactionParameters - wrap an action for submission
//
// space is ignored except for take
func TransactionParameters(name string, action string, space int) (*transactionrecord.TransactionParameters, error) {
	s := ""
	if Take == action {
		s = strconv.Itoa(space)
	}
	payload := []byte(name + "," + action + "," + s)
	if _, err := ParseAction(payload); nil != err {
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
