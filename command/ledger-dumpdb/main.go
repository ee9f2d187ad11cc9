// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"

	"github.com/bitmark-inc/ledgerd/blockrecord"
	"github.com/bitmark-inc/ledgerd/storage"
)

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "decode", HasArg: getoptions.NO_ARGUMENT, Short: 'd'},
		{Long: "start", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 's'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["help"]) > 0 || len(arguments) < 3 {
		usage(program)
		return
	}

	filename := arguments[0]
	tag := arguments[1]
	count, err := strconv.Atoi(arguments[2])
	if nil != err || count <= 0 {
		exitwithstatus.Message("%s: invalid count: %q", program, arguments[2])
	}

	var start []byte
	if len(options["start"]) > 0 {
		start, err = hex.DecodeString(options["start"][0])
		if nil != err {
			exitwithstatus.Message("%s: start key is not hex: %s", program, err)
		}
	}

	if err := storage.Initialise(filename, storage.ReadOnly); nil != err {
		exitwithstatus.Message("%s: open: %q  error: %s", program, filename, err)
	}
	defer storage.Finalise()

	p := poolForTag(tag)
	if nil == p {
		exitwithstatus.Message("%s: no pool corresponding to: %q", program, tag)
	}

	cursor := p.NewFetchCursor()
	if nil != start {
		cursor.Seek(start)
	}
	data, err := cursor.Fetch(count)
	if nil != err {
		exitwithstatus.Message("%s: fetch error: %s", program, err)
	}

	decode := len(options["decode"]) > 0 && "B" == tag
	for i, e := range data {
		fmt.Printf("%d: Key: %x\n", i, e.Key)
		if decode {
			if s, err := decodeBlock(e.Value); nil == err {
				fmt.Printf("%d: Block: %s\n", i, s)
				continue
			}
		}
		fmt.Printf("%d: Val: %x\n", i, e.Value)
	}
}

func usage(program string) {
	fmt.Printf("usage: %s [--decode] [--start=HEX-KEY] database tag count\n", program)
	fmt.Printf(" tags:\n")
	for tag, name := range poolTags() {
		fmt.Printf("       %s → %s\n", tag, name)
	}
}

// tag → field name for every storage pool
func poolTags() map[string]string {
	tags := make(map[string]string)
	poolType := reflect.TypeOf(storage.Pool)
	for i := 0; i < poolType.NumField(); i += 1 {
		fieldInfo := poolType.Field(i)
		tags[fieldInfo.Tag.Get("prefix")] = fieldInfo.Name
	}
	return tags
}

// locate the pool handle whose prefix tag matches
func poolForTag(tag string) *storage.PoolHandle {
	poolType := reflect.TypeOf(storage.Pool)
	poolValue := reflect.ValueOf(storage.Pool)
	for i := 0; i < poolType.NumField(); i += 1 {
		if tag == poolType.Field(i).Tag.Get("prefix") {
			return poolValue.Field(i).Interface().(*storage.PoolHandle)
		}
	}
	return nil
}

func decodeBlock(packed []byte) ([]byte, error) {
	blk, err := blockrecord.Unpack(packed)
	if nil != err {
		return nil, err
	}
	j, err := blk.JSON()
	if nil != err {
		return nil, err
	}
	return json.Marshal(j)
}
