/*
Copyright 2023 Alexander Bartolomey (github@alexanderbartolomey.de)

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package pica

import "github.com/prometheus/client_golang/prometheus"

// Collectors produced by the core decoder. pica never registers these
// itself or starts an HTTP server to export them — no network
// protocol is in scope (spec.md §1) — a host binary that wants
// /metrics registers these with its own prometheus.Registerer.
var (
	decodedRecordsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pica_decoder_decoded_records_total",
		Help: "Total number of records successfully decoded",
	})
	decodeErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pica_decoder_errors_total",
		Help: "Total number of decode errors, by kind",
	}, []string{"kind"})
	decodeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pica_decoder_duration_microseconds",
		Help:    "Duration of decoding a single record line, in microseconds",
		Buckets: []float64{1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	})
)

// Collectors is the set of prometheus.Collector implementations the
// core package produces; a host application registers them with its
// own prometheus.Registerer if it wants to export them.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{decodedRecordsTotal, decodeErrorsTotal, decodeDuration}
}
