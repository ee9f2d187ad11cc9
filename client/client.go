// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package client - access a validator through its REST interface
package client

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bitmark-inc/ledgerd/blockrecord"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/reservoir"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

const (
	requestTimeout = 30 * time.Second
)

// Error - a failed request
type Error struct {
	StatusCode int    `json:"code"`
	Message    string `json:"error"`
}

// Error - implement error
func (e *Error) Error() string {
	return fmt.Sprintf("status: %d  error: %s", e.StatusCode, e.Message)
}

// Client - connection parameters
type Client struct {
	url        string
	httpClient *http.Client
}

// New - client for a base URL such as http://127.0.0.1:8008
//
// insecure skips certificate verification for self-signed servers
func New(baseURL string, insecure bool) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
	}
	if insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &Client{
		url: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: transport,
		},
	}
}

// StateEntry - one address and value
type StateEntry struct {
	Address string `json:"address"`
	Data    []byte `json:"data"`
}

// Submit - send batches, returning the status link
func (c *Client) Submit(batches []*transactionrecord.Batch) (string, error) {
	list := &transactionrecord.BatchList{
		Batches: batches,
	}
	packed, err := list.Pack()
	if nil != err {
		return "", err
	}

	var reply struct {
		Link string `json:"link"`
	}
	err = c.do(http.MethodPost, "/batches", bytes.NewReader(packed), requestTimeout, http.StatusAccepted, &reply)
	if nil != err {
		return "", err
	}
	return reply.Link, nil
}

// Statuses - batch statuses, waiting up to wait for them to settle
func (c *Client) Statuses(ids []string, wait time.Duration) ([]reservoir.BatchStatus, error) {
	query := url.Values{}
	query.Set("id", strings.Join(ids, ","))
	if wait > 0 {
		query.Set("wait", strconv.Itoa(int(wait/time.Second)))
	}

	var reply struct {
		Data []reservoir.BatchStatus `json:"data"`
	}
	err := c.do(http.MethodGet, "/batch_statuses?"+query.Encode(), nil, requestTimeout+wait, http.StatusOK, &reply)
	if nil != err {
		return nil, err
	}
	return reply.Data, nil
}

// SubmitAndWait - send batches then wait for their outcome
//
// zero wait returns as soon as the batches are queued
func (c *Client) SubmitAndWait(batches []*transactionrecord.Batch, wait time.Duration) ([]reservoir.BatchStatus, error) {
	if _, err := c.Submit(batches); nil != err {
		return nil, err
	}
	ids := make([]string, len(batches))
	for i, b := range batches {
		ids[i] = b.HeaderSignature
	}
	return c.Statuses(ids, wait)
}

// Blocks - a page of blocks, newest first
//
// nil start means the head; zero count uses the server default
func (c *Client) Blocks(start *uint64, count int) ([]*blockrecord.BlockJSON, error) {
	query := url.Values{}
	if nil != start {
		query.Set("start", strconv.FormatUint(*start, 10))
	}
	if count > 0 {
		query.Set("limit", strconv.Itoa(count))
	}
	path := "/blocks"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var reply struct {
		Data []*blockrecord.BlockJSON `json:"data"`
	}
	if err := c.do(http.MethodGet, path, nil, requestTimeout, http.StatusOK, &reply); nil != err {
		return nil, err
	}
	return reply.Data, nil
}

// Block - one block by id
func (c *Client) Block(id string) (*blockrecord.BlockJSON, error) {
	var reply struct {
		Data *blockrecord.BlockJSON `json:"data"`
	}
	err := c.do(http.MethodGet, "/blocks/"+url.PathEscape(id), nil, requestTimeout, http.StatusOK, &reply)
	if e, ok := err.(*Error); ok && http.StatusNotFound == e.StatusCode {
		return nil, fault.BlockNotFound
	}
	if nil != err {
		return nil, err
	}
	return reply.Data, nil
}

// State - value at an address
func (c *Client) State(address string) ([]byte, error) {
	var reply struct {
		Data []byte `json:"data"`
	}
	err := c.do(http.MethodGet, "/state/"+address, nil, requestTimeout, http.StatusOK, &reply)
	if e, ok := err.(*Error); ok && http.StatusNotFound == e.StatusCode {
		return nil, fault.StateNotFound
	}
	if nil != err {
		return nil, err
	}
	return reply.Data, nil
}

// StateList - every value below an address prefix
func (c *Client) StateList(prefix string) ([]StateEntry, error) {
	var reply struct {
		Data []StateEntry `json:"data"`
	}
	err := c.do(http.MethodGet, "/state?address="+url.QueryEscape(prefix), nil, requestTimeout, http.StatusOK, &reply)
	if nil != err {
		return nil, err
	}
	return reply.Data, nil
}

func (c *Client) do(method string, path string, body io.Reader, timeout time.Duration, expected int, reply interface{}) error {
	request, err := http.NewRequest(method, c.url+path, body)
	if nil != err {
		return err
	}
	if nil != body {
		request.Header.Set("Content-Type", "application/octet-stream")
	}

	client := *c.httpClient
	client.Timeout = timeout

	response, err := client.Do(request)
	if nil != err {
		return err
	}
	defer response.Body.Close()

	data, err := ioutil.ReadAll(response.Body)
	if nil != err {
		return err
	}

	if expected != response.StatusCode {
		e := &Error{}
		if err := json.Unmarshal(data, e); nil != err || "" == e.Message {
			e.Message = http.StatusText(response.StatusCode)
		}
		e.StatusCode = response.StatusCode
		return e
	}

	return json.Unmarshal(data, reply)
}
