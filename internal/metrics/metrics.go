// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FetchAttempts counts oEmbed fetch attempts per proxy endpoint.
	FetchAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stash_oembed_fetch_attempts_total",
		Help: "Number of oEmbed fetch attempts, per proxy endpoint.",
	}, []string{"proxy"})

	// FetchFailures counts failed attempts per proxy endpoint.
	FetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stash_oembed_fetch_failures_total",
		Help: "Number of failed oEmbed fetch attempts, per proxy endpoint.",
	}, []string{"proxy"})

	// FetchExhausted counts fetches where every proxy failed.
	FetchExhausted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stash_oembed_fetch_exhausted_total",
		Help: "Number of oEmbed fetches that exhausted all proxies.",
	})

	// BookmarksCreated counts bookmarks created, by content type.
	BookmarksCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stash_bookmarks_created_total",
		Help: "Number of bookmarks created, by content type.",
	}, []string{"type"})

	// StoreSaves counts persistence writes and their outcome.
	StoreSaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stash_store_saves_total",
		Help: "Number of persistence writes, by outcome.",
	}, []string{"outcome"})
)
