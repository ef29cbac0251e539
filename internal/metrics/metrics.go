// Package metrics holds Prometheus instruments that are used across
// sitekit.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ActiveTenants = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_tenants",
			Help: "Number of tenants currently loaded in memory.",
		})

	TenantLoadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_load_total",
			Help: "Cumulative number of tenants successfully loaded.",
		})

	TenantLoadErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_load_errors_total",
			Help: "Cumulative number of tenant load errors.",
		})

	TenantEvictTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_evict_total",
			Help: "Cumulative number of tenants evicted from the cache.",
		})

	EditorSessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "editor_sessions_active",
			Help: "Number of live editor sessions held by the preview hub.",
		})

	// PreviewMessages counts channel traffic.  direction is "in" (frame →
	// host) or "out" (host → frame); type is the envelope type.
	PreviewMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preview_messages_total",
			Help: "Preview channel messages by direction and type.",
		}, []string{"direction", "type"})

	PreviewDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preview_messages_dropped_total",
			Help: "Preview channel messages dropped, by reason.",
		}, []string{"reason"})

	// RenderFallback counts dispatch falling past the variant tier.
	RenderFallback = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "render_fallback_total",
			Help: "Sections or blocks rendered by a fallback tier.",
		}, []string{"tier"})

	HistoryCommits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_commits_total",
			Help: "Undo history commits, by kind (push or coalesce).",
		}, []string{"kind"})

	SectionSaves = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "section_saves_total",
			Help: "Sections written to the store.",
		})

	SectionSaveErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "section_save_errors_total",
			Help: "Section writes that failed.",
		})
)

func init() {
	prometheus.MustRegister(
		ActiveTenants,
		TenantLoadTotal,
		TenantLoadErrorsTotal,
		TenantEvictTotal,
		EditorSessionsActive,
		PreviewMessages,
		PreviewDropped,
		RenderFallback,
		HistoryCommits,
		SectionSaves,
		SectionSaveErrors,
	)
}
