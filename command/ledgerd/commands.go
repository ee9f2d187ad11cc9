// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/block"
	"github.com/bitmark-inc/ledgerd/publisher"
	"github.com/bitmark-inc/ledgerd/rest"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/ledgerd/zmqutil"
)

const (
	validatorPrivateKeyFilename = "validator.private"

	restCertificateFilename = "rest.crt"
	restPrivateKeyFilename  = "rest.key"

	publishPublicKeyFilename  = "publish.public"
	publishPrivateKeyFilename = "publish.private"
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-validator-key", "key":
		privateKeyFilename := getFilenameWithDirectory(arguments, validatorPrivateKeyFilename)
		key, err := account.NewPrivateKey()
		if nil != err {
			exitwithstatus.Message("generate validator key error: %s", err)
		}
		if err := account.WritePrivateKeyFile(privateKeyFilename, key); nil != err {
			exitwithstatus.Message("generate validator key: %q error: %s", privateKeyFilename, err)
		}
		fmt.Printf("generated validator key: %q\n", privateKeyFilename)
		fmt.Printf("public key: %s\n", key.PublicKey())

	case "gen-rest-cert", "rest":
		certificateFilename := getFilenameWithDirectory(arguments, restCertificateFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, restPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("rest", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			exitwithstatus.Message("generate REST key: %q and certificate: %q error: %s", privateKeyFilename, certificateFilename, err)
		}
		fmt.Printf("generated REST key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "gen-publish-keys", "publish":
		publicKeyFilename := getFilenameWithDirectory(arguments, publishPublicKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, publishPrivateKeyFilename)
		err := zmqutil.MakeKeyPair(publicKeyFilename, privateKeyFilename)
		if nil != err {
			exitwithstatus.Message("generate private key: %q and public key: %q error: %s", privateKeyFilename, publicKeyFilename, err)
		}
		fmt.Printf("generated private key: %q and public key: %q\n", privateKeyFilename, publicKeyFilename)

	case "start", "run":
		return false // continue processing

	case "config-test", "cfg", "block", "b", "policy":
		return false // defer processing until configuration is read

	case "version", "v":
		fmt.Printf("%s\n", version)

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)       - display this message\n\n")
		fmt.Printf("  version                    (v)       - display version sting\n\n")

		fmt.Printf("  gen-validator-key [DIR]    (key)     - create block signing key in: %q\n", "DIR/"+validatorPrivateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-rest-cert [DIR] [IPs...] (rest)  - create private key in:  %q\n", "DIR/"+restPrivateKeyFilename)
		fmt.Printf("                                         and the certificate in: %q\n", "DIR/"+restCertificateFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-publish-keys [DIR]     (publish) - create private key in: %q\n", "DIR/"+publishPrivateKeyFilename)
		fmt.Printf("                                         and the public key in: %q\n", "DIR/"+publishPublicKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)     - just run the program, same as no arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)     - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  block S [E]                (b)       - dump block(s) as JSON structures to stdout\n")
		fmt.Printf("\n")

		fmt.Printf("  policy                               - show the namespace policy in force for the next block\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		printJSON(options)

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the block and state pools are open so these commands can read them
func processDataCommand(arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "block", "b":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing block number argument")
		}

		n, err := strconv.ParseUint(arguments[0], 10, 64)
		if nil != err {
			exitwithstatus.Message("error in block number: %s", err)
		}

		// optional end range
		nEnd := n
		if len(arguments) > 1 {
			nEnd, err = strconv.ParseUint(arguments[1], 10, 64)
			if nil != err {
				exitwithstatus.Message("error in ending block number: %s", err)
			}
			if nEnd < n {
				exitwithstatus.Message("error: invalid ending block number: %d must not be less than %d", nEnd, n)
			}
		}

		for ; n <= nEnd; n += 1 {
			blk, err := block.Get(n)
			if nil != err {
				exitwithstatus.Message("block: %d  error: %s", n, err)
			}
			j, err := blk.JSON()
			if nil != err {
				exitwithstatus.Message("block: %d  JSON error: %s", n, err)
			}
			printJSON(j)
		}

	case "policy":
		next := block.NextNumber()
		policies, err := publisher.LoadPolicy(storage.StateView{}, next)
		if nil != err {
			exitwithstatus.Message("load policy error: %s", err)
		}
		fmt.Printf("policy for block: %d\n", next)
		printJSON(policies.Get(next).Rules())

	default:
		exitwithstatus.Message("error: no such command: %s", command)

	}

	// indicate processing complete and perform normal exit from main
	return true
}

// indented JSON to stdout
func printJSON(data interface{}) {
	b, err := json.Marshal(data)
	if err != nil {
		exitwithstatus.Message("error: %s", err)
	}
	var out bytes.Buffer
	json.Indent(&out, b, "", "  ")
	out.WriteTo(os.Stdout)
	os.Stdout.WriteString("\n")
}

// get the working directory; if not set in the arguments
// it's set to the current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}

// fingerprint for the startup log
func certificateFingerprint(options *Configuration) string {
	if !options.REST.TLS {
		return ""
	}
	_, fingerprint, err := rest.TLSConfiguration(options.REST.Certificate, options.REST.PrivateKey)
	if nil != err {
		return ""
	}
	return fmt.Sprintf("%x", fingerprint)
}
