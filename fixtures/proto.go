// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"bufio"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	proto "github.com/golang/protobuf/proto"
)

// ProtoField - number and encoding of one message field
type ProtoField struct {
	Number   int
	Wire     string
	Repeated bool
}

var (
	messageLine = regexp.MustCompile(`^message\s+(\w+)\s*\{`)
	fieldLine   = regexp.MustCompile(`^(repeated\s+)?([\w.]+)\s+(\w+)\s*=\s*(\d+)\s*;`)
)

// scalar types carried as varints, anything else is length delimited
var varintTypes = map[string]bool{
	"bool":   true,
	"int32":  true,
	"int64":  true,
	"uint32": true,
	"uint64": true,
}

// ProtoFile - fields of every message in a .proto file
//
// only flat messages of scalar, repeated and message fields are handled
func ProtoFile(filename string) (map[string]map[string]ProtoField, error) {
	f, err := os.Open(filename)
	if nil != err {
		return nil, err
	}
	defer f.Close()

	messages := make(map[string]map[string]ProtoField)
	var current map[string]ProtoField

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if m := messageLine.FindStringSubmatch(line); nil != m {
			current = make(map[string]ProtoField)
			messages[m[1]] = current
			continue
		}
		if "}" == line {
			current = nil
			continue
		}
		m := fieldLine.FindStringSubmatch(line)
		if nil == m || nil == current {
			continue
		}
		n, err := strconv.Atoi(m[4])
		if nil != err {
			return nil, err
		}
		wire := "bytes"
		if varintTypes[m[2]] {
			wire = "varint"
		}
		current[m[3]] = ProtoField{
			Number:   n,
			Wire:     wire,
			Repeated: "" != m[1],
		}
	}
	return messages, scanner.Err()
}

// MessageFields - fields declared by the protobuf tags of a message struct
func MessageFields(message proto.Message) map[string]ProtoField {
	t := reflect.TypeOf(message)
	if reflect.Ptr == t.Kind() {
		t = t.Elem()
	}
	fields := make(map[string]ProtoField)
	for _, p := range proto.GetProperties(t).Prop {
		if 0 == p.Tag {
			continue
		}
		fields[p.OrigName] = ProtoField{
			Number:   p.Tag,
			Wire:     p.Wire,
			Repeated: p.Repeated,
		}
	}
	return fields
}
