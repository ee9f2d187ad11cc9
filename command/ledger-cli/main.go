// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdout, os.Stderr)
	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "ledger-cli"
	app.Usage = "submit transactions to and query a ledgerd validator"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "url, u",
			Value:  "http://127.0.0.1:8008",
			Usage:  " validator REST `URL`",
			EnvVar: "LEDGER_URL",
		},
		cli.BoolFlag{
			Name:  "insecure",
			Usage: " do not verify the server certificate",
		},
		cli.StringFlag{
			Name:   "key, k",
			Value:  "",
			Usage:  " signing key `FILE` for submissions",
			EnvVar: "LEDGER_KEY",
		},
		cli.IntFlag{
			Name:  "wait, w",
			Value: 0,
			Usage: " wait up to `SECONDS` for submitted batches to be committed",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      "keygen",
			Usage:     "create a new signing key file",
			ArgsUsage: "FILE",
			Action:    runKeygen,
		},
		{
			Name:  "intkey",
			Usage: "integer key/value transactions",
			Subcommands: []cli.Command{
				{
					Name:      "set",
					Usage:     "create a name with an initial value",
					ArgsUsage: "NAME VALUE",
					Action:    runIntkey("set"),
				},
				{
					Name:      "inc",
					Usage:     "increment the value of a name",
					ArgsUsage: "NAME VALUE",
					Action:    runIntkey("inc"),
				},
				{
					Name:      "dec",
					Usage:     "decrement the value of a name",
					ArgsUsage: "NAME VALUE",
					Action:    runIntkey("dec"),
				},
				{
					Name:      "show",
					Usage:     "display the value of a name",
					ArgsUsage: "NAME",
					Action:    runIntkeyShow,
				},
			},
		},
		{
			Name:  "xo",
			Usage: "tic-tac-toe transactions",
			Subcommands: []cli.Command{
				{
					Name:      "create",
					Usage:     "start a new game",
					ArgsUsage: "NAME",
					Action:    runXO("create"),
				},
				{
					Name:      "take",
					Usage:     "mark a space, numbered 1 to 9",
					ArgsUsage: "NAME SPACE",
					Action:    runXO("take"),
				},
				{
					Name:      "delete",
					Usage:     "remove a game",
					ArgsUsage: "NAME",
					Action:    runXO("delete"),
				},
				{
					Name:   "list",
					Usage:  "display all games",
					Action: runXOList,
				},
			},
		},
		{
			Name:  "policy",
			Usage: "namespace permission settings",
			Subcommands: []cli.Command{
				{
					Name:      "set",
					Usage:     "replace the policy with the rules from a JSON file",
					ArgsUsage: "FILE",
					Action:    runPolicySet,
				},
				{
					Name:   "show",
					Usage:  "display the stored policy",
					Action: runPolicyShow,
				},
			},
		},
		{
			Name:      "blocks",
			Usage:     "list blocks, newest first",
			ArgsUsage: "",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "start, s",
					Value: "",
					Usage: " highest block `NUMBER` to list",
				},
				cli.IntFlag{
					Name:  "count, c",
					Value: 10,
					Usage: " number of blocks `COUNT`",
				},
			},
			Action: runBlocks,
		},
		{
			Name:      "block",
			Usage:     "display one block",
			ArgsUsage: "BLOCK-ID",
			Action:    runBlock,
		},
		{
			Name:      "state",
			Usage:     "display the value at an address or every value below a prefix",
			ArgsUsage: "ADDRESS|PREFIX",
			Action:    runState,
		},
		{
			Name:      "status",
			Usage:     "display batch statuses",
			ArgsUsage: "BATCH-ID...",
			Action:    runStatus,
		},
		{
			Name:   "version",
			Usage:  "display version",
			Action: runVersion,
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			url:      c.GlobalString("url"),
			insecure: c.GlobalBool("insecure"),
			keyFile:  c.GlobalString("key"),
			wait:     c.GlobalInt("wait"),
			verbose:  c.GlobalBool("verbose"),
			e:        c.App.ErrWriter,
			w:        c.App.Writer,
		}
		return nil
	}

	return app
}

func runVersion(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "%s\n", version)
	return nil
}
