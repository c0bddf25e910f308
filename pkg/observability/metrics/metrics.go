/*
 * Copyright 2024 The Ascendore Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package metrics implements prometheus metrics for the attachment cache
// and exposes the metrics exposition handler
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricNamespace = "attachcache"
	cacheSubsystem  = "cache"
)

// CacheObjectOperations is a Counter of operations (in # of objects) performed on an attachment cache
var CacheObjectOperations *prometheus.CounterVec

// CacheByteOperations is a Counter of operations (in # of bytes) performed on an attachment cache
var CacheByteOperations *prometheus.CounterVec

// CacheEvents is a Counter of events (errors, evictions, expiries) occurring on an attachment cache
var CacheEvents *prometheus.CounterVec

// CacheObjects is a Gauge representing the number of objects resident in an attachment cache tier
var CacheObjects *prometheus.GaugeVec

// CacheBytes is a Gauge representing the number of bytes resident in an attachment cache tier
var CacheBytes *prometheus.GaugeVec

// CacheMaxBytes is a Gauge for an attachment cache tier's byte budget
var CacheMaxBytes *prometheus.GaugeVec

func init() {
	CacheObjectOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: cacheSubsystem,
			Name:      "operation_objects_total",
			Help:      "Count of operations performed on an attachment cache (in # of objects).",
		},
		[]string{"cache_name", "provider", "operation", "status"},
	)
	CacheByteOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: cacheSubsystem,
			Name:      "operation_bytes_total",
			Help:      "Count of operations performed on an attachment cache (in bytes).",
		},
		[]string{"cache_name", "provider", "operation", "status"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: cacheSubsystem,
			Name:      "events_total",
			Help:      "Count of events occurring on an attachment cache.",
		},
		[]string{"cache_name", "provider", "event", "reason"},
	)
	CacheObjects = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: cacheSubsystem,
			Name:      "usage_objects",
			Help:      "Number of objects resident in an attachment cache tier.",
		},
		[]string{"cache_name", "provider"},
	)
	CacheBytes = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: cacheSubsystem,
			Name:      "usage_bytes",
			Help:      "Number of bytes resident in an attachment cache tier.",
		},
		[]string{"cache_name", "provider"},
	)
	CacheMaxBytes = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: cacheSubsystem,
			Name:      "max_size_bytes",
			Help:      "Byte budget of an attachment cache tier.",
		},
		[]string{"cache_name", "provider"},
	)

	prometheus.MustRegister(CacheObjectOperations, CacheByteOperations, CacheEvents,
		CacheObjects, CacheBytes, CacheMaxBytes)
}

// Handler returns the HTTP handler for prometheus exposition, for the
// surrounding application to mount wherever it serves diagnostics
func Handler() http.Handler {
	return promhttp.Handler()
}
