// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared helpers for tests
package fixtures

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/bitmark-inc/logger"
)

const (
	LogCategory = "testing"
)

var logDirectory string

// SetupTestLogger - start a logger writing into a temporary directory
func SetupTestLogger() {
	dir, err := ioutil.TempDir("", "ledgerd-log-")
	if nil != err {
		fmt.Println("create log dir with error: ", err)
		return
	}
	logDirectory = dir

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop the logger and remove its files
func TeardownTestLogger() {
	logger.Finalise()
	if "" == logDirectory {
		return
	}
	err := os.RemoveAll(logDirectory)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
	logDirectory = ""
}

// TempDirectory - create a scratch directory for a database
func TempDirectory(prefix string) string {
	dir, err := ioutil.TempDir("", prefix)
	if nil != err {
		panic(err)
	}
	return dir
}
