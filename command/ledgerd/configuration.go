// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/ledgerd/configuration"
	"github.com/bitmark-inc/ledgerd/policy"
	"github.com/bitmark-inc/ledgerd/publish"
	"github.com/bitmark-inc/ledgerd/publisher"
	"github.com/bitmark-inc/ledgerd/reservoir"
	"github.com/bitmark-inc/ledgerd/rest"
	"github.com/bitmark-inc/ledgerd/util"
	"github.com/bitmark-inc/logger"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultSigningKeyFile    = "validator.private"
	defaultPublishPublicKey  = "publish.public"
	defaultPublishPrivateKey = "publish.private"
	defaultKeyFile           = "rest.key"
	defaultCertificateFile   = "rest.crt"

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "ledgerd" // storage adds the .leveldb suffix

	defaultLogDirectory = "log"
	defaultLogFile      = "ledgerd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRESTClients = 100
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

var defaultLogLevels = LoglevelMap{
	logger.DefaultTag: "critical",
}

// DatabaseType - leveldb location
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// RuleType - one namespace rule as written in the configuration file
type RuleType struct {
	Namespace    string   `gluamapper:"namespace" json:"namespace"`
	Mode         string   `gluamapper:"mode" json:"mode"`
	Signers      []string `gluamapper:"signers" json:"signers,omitempty"`
	CheckBatcher bool     `gluamapper:"check_batcher" json:"check_batcher"`
}

// Configuration - the whole configuration file
type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string       `gluamapper:"pidfile" json:"pidfile"`
	Database      DatabaseType `gluamapper:"database" json:"database"`

	Validator  publisher.Configuration `gluamapper:"validator" json:"validator"`
	Policy     []RuleType              `gluamapper:"policy" json:"policy"`
	REST       rest.Configuration      `gluamapper:"rest" json:"rest"`
	Publishing publish.Configuration   `gluamapper:"publishing" json:"publishing"`
	Logging    logger.Configuration    `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabase,
		},

		Validator: publisher.Configuration{
			SigningKey:      defaultSigningKeyFile,
			PublishInterval: publisher.DefaultPublishInterval,
			MaximumBatches:  publisher.DefaultMaximumBatches,
			QueueSize:       reservoir.DefaultQueueSize,
		},

		REST: rest.Configuration{
			MaximumConnections: defaultRESTClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
			RequestRate:        rest.DefaultRequestRate,
			RequestBurst:       rest.DefaultRequestBurst,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	// rules are compiled here so a bad policy never reaches the database
	if _, err := options.rules(); nil != err {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.Validator.SigningKey,
		&options.REST.Certificate,
		&options.REST.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
		&options.Publishing.PublicKey,
		&options.Publishing.PrivateKey,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f[0])
		}
	}

	// create directories if they do not already exist
	for _, d := range []string{
		options.Database.Directory,
		options.Logging.Directory,
	} {
		if err := os.MkdirAll(d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

// convert the configured rules into the policy form and check them
func (c *Configuration) rules() ([]policy.Rule, error) {
	rules := make([]policy.Rule, 0, len(c.Policy))
	for i, r := range c.Policy {
		m, err := policy.ParseMode(r.Mode)
		if nil != err {
			return nil, fmt.Errorf("policy[%d]: %q  error: %s", i, r.Mode, err)
		}
		rules = append(rules, policy.Rule{
			Namespace:    r.Namespace,
			Mode:         m,
			Signers:      r.Signers,
			CheckBatcher: r.CheckBatcher,
		})
	}

	if _, err := policy.NewSnapshot(0, rules); nil != err {
		return nil, err
	}
	return rules, nil
}
