// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package family - transaction family handlers
package family

import (
	"sort"
	"sync"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/namespace"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// Handler - the logic of one family
type Handler interface {
	FamilyName() string
	FamilyVersions() []string
	Namespaces() []string
	Apply(header *transactionrecord.TransactionHeader, payload []byte, context *state.Context) error
}

// Within - true if every declaration lies inside one of the
// handler's namespaces
func Within(h Handler, declarations []string) bool {
	namespaces := h.Namespaces()
check:
	for _, d := range declarations {
		for _, ns := range namespaces {
			if namespace.Covers(ns, d) {
				continue check
			}
		}
		return false
	}
	return true
}

// Registry - handlers by family name and version
type Registry struct {
	sync.RWMutex
	handlers map[string]Handler
}

func registryKey(name string, version string) string {
	return name + "\x00" + version
}

// NewRegistry - registry holding the given handlers
func NewRegistry(handlers ...Handler) *Registry {
	r := &Registry{
		handlers: make(map[string]Handler),
	}
	for _, h := range handlers {
		r.Register(h)
	}
	return r
}

// Register - add or replace a handler for all of its versions
func (r *Registry) Register(h Handler) {
	r.Lock()
	defer r.Unlock()
	for _, v := range h.FamilyVersions() {
		r.handlers[registryKey(h.FamilyName(), v)] = h
	}
}

// Lookup - handler for a family name and version
func (r *Registry) Lookup(name string, version string) (Handler, error) {
	r.RLock()
	defer r.RUnlock()
	h, ok := r.handlers[registryKey(name, version)]
	if !ok {
		return nil, fault.UnknownFamily
	}
	return h, nil
}

// Names - registered family names
func (r *Registry) Names() []string {
	r.RLock()
	defer r.RUnlock()
	seen := make(map[string]struct{})
	names := []string{}
	for _, h := range r.handlers {
		if _, ok := seen[h.FamilyName()]; !ok {
			seen[h.FamilyName()] = struct{}{}
			names = append(names, h.FamilyName())
		}
	}
	sort.Strings(names)
	return names
}
