// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package api - the generic HTTP request layer
//
// adds timeout, retry with backoff, response caching and offline
// queueing on top of net/http.  Every error leaving this package is
// one of the fault classes: connection, server, authentication or
// unknown.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/yumvi-pay/remitd/cache"
	"github.com/yumvi-pay/remitd/connectivity"
	"github.com/yumvi-pay/remitd/fault"
	"github.com/yumvi-pay/remitd/platform"
	"github.com/yumvi-pay/remitd/queue"
	"github.com/yumvi-pay/remitd/storage"
)

// request defaults
const (
	DefaultTimeout        = 10 * time.Second
	DefaultCacheTTL       = 5 * time.Minute
	DefaultMaxRetries     = 3
	DefaultBackoffInitial = 500 * time.Millisecond
	DefaultBackoffFactor  = 2
)

// Options - per-request behaviour
//
// the zero value gives: 10s timeout, no caching, no retry, offline
// queueing enabled
type Options struct {
	Timeout        time.Duration
	Cacheable      bool
	CacheKey       string // defaults to the URL
	CacheTTL       time.Duration
	Retry          bool
	MaxRetries     int
	BackoffInitial time.Duration
	BackoffFactor  int
	DisableCache   bool // a GET with this set always goes to the network
	DisableQueue   bool // queue-on-offline is the default
	ForceNetwork   bool // bypass cache and offline short-circuit
	Headers        map[string]string
	Body           json.RawMessage
}

// Config - client-wide defaults, normally taken from the daemon
// configuration; zero values fall back to the package defaults
type Config struct {
	Timeout    time.Duration
	MaxRetries int
}

// Client - the request layer
type Client struct {
	log          *logger.L
	conn         *connectivity.State
	queue        *queue.Queue
	pool         *storage.PoolHandle
	httpClient   *http.Client
	platformName string
	timeout      time.Duration
	maxRetries   int
}

// NewClient - create the request layer
//
// on the native platform every successful response is cached even
// without the Cacheable flag, biasing toward offline availability
func NewClient(conn *connectivity.State, q *queue.Queue, platformName string, config Config) *Client {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = DefaultMaxRetries
	}
	return &Client{
		log:          logger.New("api"),
		conn:         conn,
		queue:        q,
		pool:         storage.Pool.APICache,
		httpClient:   &http.Client{},
		platformName: platformName,
		timeout:      config.Timeout,
		maxRetries:   config.MaxRetries,
	}
}

// Get - GET with read-through caching
//
// Cacheable defaults on for reads; set DisableCache for the rare GET
// that must always go to the network
func (c *Client) Get(ctx context.Context, url string, options Options) (json.RawMessage, error) {
	if !options.DisableCache {
		options.Cacheable = true
	}
	return c.Request(ctx, http.MethodGet, url, options)
}

// Post - POST, queued for replay if made while offline
func (c *Client) Post(ctx context.Context, url string, options Options) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPost, url, options)
}

// Put - PUT, queued for replay if made while offline
func (c *Client) Put(ctx context.Context, url string, options Options) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPut, url, options)
}

// Delete - DELETE, queued for replay if made while offline
func (c *Client) Delete(ctx context.Context, url string, options Options) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodDelete, url, options)
}

// Request - perform one call
//
// behaviour in order:
//  1. offline or cacheable requests consult the cache: any cached
//     copy is served while offline, a fresh one while online
//  2. offline with nothing usable fails with a connection error and,
//     unless queueing is disabled, records a mutating call for replay
//  3. otherwise the call goes to the network with timeout, status
//     classification and optional retry with exponential backoff
//  4. successful responses are cached when cacheable, or always on
//     the native platform
func (c *Client) Request(ctx context.Context, method string, url string, options Options) (json.RawMessage, error) {
	c.applyDefaults(&options)

	cacheKey := options.CacheKey
	if "" == cacheKey {
		cacheKey = url
	}

	offline := c.conn.IsOffline() && !options.ForceNetwork

	if offline || options.Cacheable {
		if envelope, ok := cache.Get(c.pool, cacheKey); ok {
			if offline {
				c.log.Debugf("offline, serving cache for %q", cacheKey)
				return envelope.Data, nil
			}
			if options.Cacheable && !options.ForceNetwork && !envelope.Expired(options.CacheTTL) {
				c.log.Debugf("cache hit for %q", cacheKey)
				return envelope.Data, nil
			}
			// stale while online: fall through to network
		}
	}

	if offline {
		c.enqueue(method, url, options)
		return nil, fault.ErrNoConnection
	}

	data, err := c.requestWithRetry(ctx, method, url, options)
	if nil != err {
		c.enqueue(method, url, options)
		return nil, err
	}

	if !options.DisableCache && (options.Cacheable || platform.Durable(c.platformName)) {
		cache.Put(c.pool, cacheKey, data)
	}
	return data, nil
}

// ReplayFunc - the queue drain callback: the same call with queueing
// disabled and the network forced, so a replay can neither re-queue
// itself nor be short-circuited back into the cache
func (c *Client) ReplayFunc() queue.ReplayFunc {
	return func(request queue.Request) error {
		_, err := c.Request(context.Background(), request.Method, request.URL, Options{
			Headers:      request.Headers,
			Body:         request.Body,
			DisableQueue: true,
			ForceNetwork: true,
		})
		return err
	}
}

// offline queueing is a recovery strategy for mutating calls only;
// GETs recover through the cache
func (c *Client) enqueue(method string, url string, options Options) {
	if options.DisableQueue || http.MethodGet == method {
		return
	}
	if nil == c.queue {
		return
	}
	c.queue.Add(method, url, options.Headers, options.Body)
}

func (c *Client) requestWithRetry(ctx context.Context, method string, url string, options Options) (json.RawMessage, error) {

	attempts := 1
	if options.Retry {
		attempts += options.MaxRetries
	}

	backoff := options.BackoffInitial

	var data json.RawMessage
	var err error
	for attempt := 0; attempt < attempts; attempt += 1 {
		if attempt > 0 {
			c.log.Infof("retry %d of %d for: %s %s", attempt, attempts-1, method, url)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, fault.ErrRequestTimeout
			}
			backoff *= time.Duration(options.BackoffFactor)
		}

		data, err = c.do(ctx, method, url, options)
		if nil == err {
			return data, nil
		}
		if !retryable(err) {
			return nil, err
		}
	}
	return nil, err
}

// one network attempt: timeout race, status classification, JSON
// validation
func (c *Client) do(ctx context.Context, method string, url string, options Options) (json.RawMessage, error) {

	ctx, cancel := context.WithTimeout(ctx, options.Timeout)
	defer cancel()

	var reader *bytes.Reader
	if nil != options.Body {
		reader = bytes.NewReader(options.Body)
	} else {
		reader = bytes.NewReader([]byte{})
	}

	request, err := http.NewRequest(method, url, reader)
	if nil != err {
		return nil, fault.InvalidError(err.Error())
	}
	request = request.WithContext(ctx)

	request.Header.Set("Content-Type", "application/json")
	for k, v := range options.Headers {
		request.Header.Set(k, v)
	}

	response, err := c.httpClient.Do(request)
	if nil != err {
		if context.DeadlineExceeded == ctx.Err() {
			return nil, fault.ErrRequestTimeout
		}
		return nil, fault.ConnectionError(err.Error())
	}
	defer response.Body.Close()

	body, err := ioutil.ReadAll(response.Body)
	if nil != err {
		return nil, fault.ConnectionError(err.Error())
	}

	switch {
	case response.StatusCode >= 200 && response.StatusCode <= 299:
		// fall through to body validation

	case response.StatusCode >= 500:
		return nil, fault.ErrServerFailure

	case http.StatusUnauthorized == response.StatusCode,
		http.StatusForbidden == response.StatusCode:
		return nil, fault.ErrAuthenticationRequired

	default:
		return nil, fault.ErrUnexpectedResponse
	}

	if 0 == len(body) {
		// some mutating endpoints reply 204 with no body
		return json.RawMessage(`null`), nil
	}
	if !json.Valid(body) {
		return nil, fault.ErrUnparseableResponse
	}
	return json.RawMessage(body), nil
}

// connection and server failures are transient, authentication and
// unknown statuses are not
func retryable(err error) bool {
	return fault.IsErrConnection(err) || fault.IsErrServer(err)
}

func (c *Client) applyDefaults(options *Options) {
	if options.Timeout <= 0 {
		options.Timeout = c.timeout
	}
	if options.CacheTTL <= 0 {
		options.CacheTTL = DefaultCacheTTL
	}
	if options.MaxRetries <= 0 {
		options.MaxRetries = c.maxRetries
	}
	if options.BackoffInitial <= 0 {
		options.BackoffInitial = DefaultBackoffInitial
	}
	if options.BackoffFactor <= 0 {
		options.BackoffFactor = DefaultBackoffFactor
	}
}
