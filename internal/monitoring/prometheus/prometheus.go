// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
)

var _ monitoring.MonitorInterface = (*Monitor)(nil)

type Monitor struct {
	service string

	responseTime      *prometheus.HistogramVec
	dependencies      *prometheus.GaugeVec
	tenantResolutions *prometheus.CounterVec
	guardRejections   *prometheus.CounterVec
	unscopedQueries   *prometheus.CounterVec

	logger logging.LoggerInterface
}

func (m *Monitor) GetService() string {
	return m.service
}

func (m *Monitor) SetResponseTimeMetric(tags map[string]string, value float64) error {
	if m.responseTime == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.responseTime.With(tags).Observe(value)

	return nil
}

func (m *Monitor) SetDependencyAvailability(tags map[string]string, value float64) error {
	if m.dependencies == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.dependencies.With(tags).Set(value)

	return nil
}

func (m *Monitor) IncTenantResolutionMetric(tags map[string]string) error {
	if m.tenantResolutions == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.tenantResolutions.With(tags).Inc()

	return nil
}

func (m *Monitor) IncGuardRejectionMetric(tags map[string]string) error {
	if m.guardRejections == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.guardRejections.With(tags).Inc()

	return nil
}

func (m *Monitor) IncUnscopedQueryMetric(tags map[string]string) error {
	if m.unscopedQueries == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.unscopedQueries.With(tags).Inc()

	return nil
}

func (m *Monitor) registerHistograms() {
	histograms := make([]*prometheus.HistogramVec, 0)

	m.responseTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        "http_response_time_seconds",
			Help:        "http_response_time_seconds",
			ConstLabels: prometheus.Labels{"service": m.service},
		},
		[]string{"route", "status"},
	)

	histograms = append(histograms, m.responseTime)

	for _, histogram := range histograms {
		if err := prometheus.Register(histogram); err != nil {
			m.logger.Debugf("metric already registered: %s", err)
		}
	}
}

func (m *Monitor) registerGauges() {
	gauges := make([]*prometheus.GaugeVec, 0)

	m.dependencies = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name:        "dependency_available",
			Help:        "dependency_available",
			ConstLabels: prometheus.Labels{"service": m.service},
		},
		[]string{"component"},
	)

	gauges = append(gauges, m.dependencies)

	for _, gauge := range gauges {
		if err := prometheus.Register(gauge); err != nil {
			m.logger.Debugf("metric already registered: %s", err)
		}
	}
}

func (m *Monitor) registerCounters() {
	counters := make([]*prometheus.CounterVec, 0)

	m.tenantResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "tenant_resolutions_total",
			Help:        "tenant resolutions by candidate source and outcome",
			ConstLabels: prometheus.Labels{"service": m.service},
		},
		[]string{"source", "outcome"},
	)

	m.guardRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "tenant_guard_rejections_total",
			Help:        "requests rejected by the tenant access guard by stage and reason",
			ConstLabels: prometheus.Labels{"service": m.service},
		},
		[]string{"stage", "reason"},
	)

	m.unscopedQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "tenant_unscoped_queries_total",
			Help:        "queries on tenant scoped tables refused for lack of a tenant context",
			ConstLabels: prometheus.Labels{"service": m.service},
		},
		[]string{"table", "operation"},
	)

	counters = append(counters, m.tenantResolutions, m.guardRejections, m.unscopedQueries)

	for _, counter := range counters {
		if err := prometheus.Register(counter); err != nil {
			m.logger.Debugf("metric already registered: %s", err)
		}
	}
}

// NewMonitor creates a new prometheus monitor, registering the service metrics on the default registry
func NewMonitor(service string, logger logging.LoggerInterface) *Monitor {
	m := new(Monitor)

	m.service = service
	m.logger = logger

	m.registerHistograms()
	m.registerGauges()
	m.registerCounters()

	return m
}
