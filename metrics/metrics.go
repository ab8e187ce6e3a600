// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics reports the rpc call timers gathered during a command
package metrics

import (
	"fmt"
	"io"
	"sort"

	"github.com/33cn/splitsteal/common/log"
	"github.com/33cn/splitsteal/types"
	go_metrics "github.com/rcrowley/go-metrics"
)

var mlog = log.New("module", "metrics")

// Enabled reports whether metrics output was asked for
func Enabled(cfg *types.Metrics) bool {
	return cfg != nil && cfg.EnableMetrics
}

// StartMetrics writes every metric of r to w once when enabled, followed by
// one summary line per rpc method
func StartMetrics(cfg *types.Metrics, r go_metrics.Registry, w io.Writer) {
	if !Enabled(cfg) {
		mlog.Debug("Metrics data is not enabled to emit")
		return
	}
	if r == nil {
		r = go_metrics.DefaultRegistry
	}
	go_metrics.WriteOnce(r, w)
	for _, c := range CallCounts(r) {
		fmt.Fprintf(w, "rpc %s calls=%d errors=%d\n", c.Method, c.Calls, c.Errors)
	}
}

// CallCount one rpc method and how often it was called
type CallCount struct {
	Method string
	Calls  int64
	Errors int64
}

// CallCounts summarizes the rpc timers recorded by the json client, sorted by
// method name
func CallCounts(r go_metrics.Registry) []CallCount {
	if r == nil {
		r = go_metrics.DefaultRegistry
	}
	counts := make(map[string]*CallCount)
	get := func(method string) *CallCount {
		c, ok := counts[method]
		if !ok {
			c = &CallCount{Method: method}
			counts[method] = c
		}
		return c
	}
	r.Each(func(name string, i interface{}) {
		switch m := i.(type) {
		case go_metrics.Timer:
			if method, ok := rpcMethod(name, ""); ok {
				get(method).Calls = m.Count()
			}
		case go_metrics.Meter:
			if method, ok := rpcMethod(name, "/errors"); ok {
				get(method).Errors = m.Count()
			}
		}
	})
	out := make([]CallCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Method < out[j].Method })
	return out
}

func rpcMethod(name, suffix string) (string, bool) {
	const prefix = "rpc/"
	if len(name) <= len(prefix)+len(suffix) || name[:len(prefix)] != prefix {
		return "", false
	}
	if name[len(name)-len(suffix):] != suffix {
		return "", false
	}
	return name[len(prefix) : len(name)-len(suffix)], true
}
