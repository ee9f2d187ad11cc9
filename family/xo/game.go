// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package xo

import (
	"sort"
	"strings"

	"github.com/bitmark-inc/ledgerd/fault"
)

// game states
const (
	P1Next = "P1-NEXT"
	P2Next = "P2-NEXT"
	P1Win  = "P1-WIN"
	P2Win  = "P2-WIN"
	Tie    = "TIE"
)

const emptyBoard = "---------"

// Game - one game as stored in state
type Game struct {
	Name    string
	Board   string
	State   string
	Player1 string
	Player2 string
}

// NewGame - fresh board, first player to move
func NewGame(name string) *Game {
	return &Game{
		Name:  name,
		Board: emptyBoard,
		State: P1Next,
	}
}

func (g *Game) serialise() string {
	return strings.Join([]string{g.Name, g.Board, g.State, g.Player1, g.Player2}, ",")
}

// decode all games stored at one address
func decodeGames(data []byte) (map[string]*Game, error) {
	games := make(map[string]*Game)
	if 0 == len(data) {
		return games, nil
	}
	for _, entry := range strings.Split(string(data), "|") {
		f := strings.Split(entry, ",")
		if 5 != len(f) || len(f[1]) != len(emptyBoard) {
			return nil, fault.InvalidPayload
		}
		games[f[0]] = &Game{
			Name:    f[0],
			Board:   f[1],
			State:   f[2],
			Player1: f[3],
			Player2: f[4],
		}
	}
	return games, nil
}

// games sorted by name, so the encoding is deterministic
func encodeGames(games map[string]*Game) []byte {
	names := make([]string, 0, len(games))
	for n := range games {
		names = append(names, n)
	}
	sort.Strings(names)

	entries := make([]string, len(names))
	for i, n := range names {
		entries[i] = games[n].serialise()
	}
	return []byte(strings.Join(entries, "|"))
}

// Take - mark a space (1..9) for the player whose turn it is
func (g *Game) Take(space int, player string) error {
	if space < 1 || space > 9 {
		return fault.InvalidGameSpace
	}

	switch g.State {
	case P1Next:
		if "" == g.Player1 {
			g.Player1 = player
		} else if g.Player1 != player {
			return fault.WrongPlayer
		}
	case P2Next:
		if "" == g.Player2 {
			g.Player2 = player
		} else if g.Player2 != player {
			return fault.WrongPlayer
		}
	default:
		return fault.GameOver
	}

	i := space - 1
	if '-' != g.Board[i] {
		return fault.SpaceOccupied
	}

	mark := byte('X')
	next := P2Next
	if P2Next == g.State {
		mark = 'O'
		next = P1Next
	}
	board := []byte(g.Board)
	board[i] = mark
	g.Board = string(board)

	switch {
	case isWin(g.Board, 'X'):
		g.State = P1Win
	case isWin(g.Board, 'O'):
		g.State = P2Win
	case !strings.Contains(g.Board, "-"):
		g.State = Tie
	default:
		g.State = next
	}
	return nil
}

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

func isWin(board string, mark byte) bool {
	for _, l := range lines {
		if board[l[0]] == mark && board[l[1]] == mark && board[l[2]] == mark {
			return true
		}
	}
	return false
}
