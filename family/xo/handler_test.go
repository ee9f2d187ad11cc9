// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package xo_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/family/xo"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

var (
	player1 = strings.Repeat("1", 64)
	player2 = strings.Repeat("2", 64)
)

func apply(view state.MapView, signer string, payload string) error {
	name := strings.Split(payload, ",")[0]
	address := xo.Address(name)
	ctx := state.NewContext(view, []string{address}, []string{address})
	header := &transactionrecord.TransactionHeader{SignerPublicKey: signer}
	if err := xo.New().Apply(header, []byte(payload), ctx); nil != err {
		return err
	}
	for _, c := range ctx.Delta().Changes() {
		if c.Deleted {
			delete(view, c.Address)
		} else {
			view[c.Address] = c.Value
		}
	}
	return nil
}

func game(t *testing.T, view state.MapView, name string) *xo.Game {
	games, err := xo.Games(view[xo.Address(name)])
	require.Nil(t, err, "decode")
	for _, g := range games {
		if name == g.Name {
			return g
		}
	}
	t.Fatalf("game %s not found", name)
	return nil
}

func TestPlayToWin(t *testing.T) {
	view := state.MapView{}
	require.Nil(t, apply(view, player1, "g1,create,"), "create")
	assert.Equal(t, fault.GameAlreadyExists, apply(view, player1, "g1,create,"), "create twice")

	moves := []struct {
		player string
		space  int
	}{
		{player1, 1}, {player2, 4}, {player1, 2}, {player2, 5}, {player1, 3},
	}
	for i, m := range moves {
		require.Nil(t, apply(view, m.player, fmt.Sprintf("g1,take,%d", m.space)), "move %d", i)
	}

	g := game(t, view, "g1")
	assert.Equal(t, "XXXOO----", g.Board, "board")
	assert.Equal(t, xo.P1Win, g.State, "state")
	assert.Equal(t, player1, g.Player1, "player 1")
	assert.Equal(t, player2, g.Player2, "player 2")

	assert.Equal(t, fault.GameOver, apply(view, player2, "g1,take,9"), "after win")

	require.Nil(t, apply(view, player1, "g1,delete,"), "delete")
	assert.Equal(t, 0, len(view), "state removed")
	assert.Equal(t, fault.GameNotFound, apply(view, player1, "g1,take,1"), "deleted game")
}

func TestTakeErrors(t *testing.T) {
	view := state.MapView{}
	require.Nil(t, apply(view, player1, "g2,create,"), "create")
	require.Nil(t, apply(view, player1, "g2,take,5"), "first move")

	assert.Equal(t, fault.SpaceOccupied, apply(view, player2, "g2,take,5"), "occupied")
	assert.Equal(t, "", game(t, view, "g2").Player2, "rejected move changed nothing")

	require.Nil(t, apply(view, player2, "g2,take,1"), "second move")
	assert.Equal(t, fault.WrongPlayer, apply(view, player2, "g2,take,2"), "out of turn")
}

func TestTie(t *testing.T) {
	view := state.MapView{}
	require.Nil(t, apply(view, player1, "g3,create,"), "create")
	spaces := []int{1, 2, 3, 5, 4, 6, 8, 7, 9}
	for i, s := range spaces {
		player := player1
		if 1 == i%2 {
			player = player2
		}
		require.Nil(t, apply(view, player, fmt.Sprintf("g3,take,%d", s)), "move %d", i)
	}
	g := game(t, view, "g3")
	assert.Equal(t, "XOXXOOOXX", g.Board, "board")
	assert.Equal(t, xo.Tie, g.State, "state")
}

func TestParseAction(t *testing.T) {
	items := []struct {
		payload string
		err     error
	}{
		{"g,create,", nil},
		{"g,take,9", nil},
		{"g|x,create,", fault.InvalidGameName},
		{",create,", fault.InvalidGameName},
		{"g,take,10", fault.InvalidGameSpace},
		{"g,take,", fault.InvalidGameSpace},
		{"g,fly,", fault.InvalidGameAction},
		{"g,create", fault.InvalidPayload},
	}
	for i, item := range items {
		_, err := xo.ParseAction([]byte(item.payload))
		assert.Equal(t, item.err, err, "%d: %q", i, item.payload)
	}
}

func TestCollidingGames(t *testing.T) {
	games, err := xo.Games([]byte("a,---------,P1-NEXT,,|b,X--------,P2-NEXT," + player1 + ","))
	require.Nil(t, err, "decode")
	assert.Equal(t, 2, len(games), "two games")

	_, err = xo.Games([]byte("a,---,P1-NEXT,,"))
	assert.Equal(t, fault.InvalidPayload, err, "short board")
}

func TestTransactionParameters(t *testing.T) {
	p, err := xo.TransactionParameters("g4", xo.Take, 3)
	require.Nil(t, err, "parameters")
	assert.Equal(t, []byte("g4,take,3"), p.Payload, "payload")
	assert.Equal(t, []string{xo.Address("g4")}, p.Outputs, "outputs")

	p, err = xo.TransactionParameters("g4", xo.Create, 3)
	require.Nil(t, err, "parameters")
	assert.Equal(t, []byte("g4,create,"), p.Payload, "space ignored")
}
