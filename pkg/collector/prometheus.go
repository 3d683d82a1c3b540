// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package collector

import (
	"context"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/NVIDIA/hostprobe/pkg/defaults"
)

const namespace = "hostprobe"

// PrometheusCollector exposes host telemetry as Prometheus metrics. Values
// are read on every scrape; nothing runs between scrapes.
type PrometheusCollector struct {
	c *Collector

	cpu       *prometheus.Desc
	cpuCore   *prometheus.Desc
	memory    *prometheus.Desc
	swap      *prometheus.Desc
	volume    *prometheus.Desc
	netBytes  *prometheus.Desc
	netPkts   *prometheus.Desc
	processes *prometheus.Desc
	uptime    *prometheus.Desc
	info      *prometheus.Desc
}

// NewPrometheusCollector returns a prometheus.Collector backed by c.
func NewPrometheusCollector(c *Collector) *PrometheusCollector {
	return &PrometheusCollector{
		c: c,
		cpu: prometheus.NewDesc(namespace+"_cpu_utilization_percent",
			"Aggregate CPU utilization across all cores.", nil, nil),
		cpuCore: prometheus.NewDesc(namespace+"_cpu_core_utilization_percent",
			"CPU utilization of one logical core.", []string{"core"}, nil),
		memory: prometheus.NewDesc(namespace+"_memory_bytes",
			"Physical memory by state.", []string{"state"}, nil),
		swap: prometheus.NewDesc(namespace+"_swap_bytes",
			"Swap space by state.", []string{"state"}, nil),
		volume: prometheus.NewDesc(namespace+"_volume_bytes",
			"Mounted volume capacity by state.", []string{"volume", "mount_point", "state"}, nil),
		netBytes: prometheus.NewDesc(namespace+"_network_bytes_total",
			"Bytes transferred on all non-loopback interfaces that are up.", []string{"direction"}, nil),
		netPkts: prometheus.NewDesc(namespace+"_network_packets_total",
			"Packets transferred on all non-loopback interfaces that are up.", []string{"direction"}, nil),
		processes: prometheus.NewDesc(namespace+"_processes",
			"Number of running processes.", nil, nil),
		uptime: prometheus.NewDesc(namespace+"_uptime_seconds",
			"Seconds since boot.", nil, nil),
		info: prometheus.NewDesc(namespace+"_host_info",
			"Host identity, always 1.", []string{"backend", "os_name", "os_version", "kernel_version", "cpu_brand"}, nil),
	}
}

// Describe implements prometheus.Collector.
func (p *PrometheusCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- p.cpu
	ch <- p.cpuCore
	ch <- p.memory
	ch <- p.swap
	ch <- p.volume
	ch <- p.netBytes
	ch <- p.netPkts
	ch <- p.processes
	ch <- p.uptime
	ch <- p.info
}

// Collect implements prometheus.Collector.
func (p *PrometheusCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), defaults.CollectorTimeout)
	defer cancel()

	res := p.c.SampleResources(ctx)

	ch <- prometheus.MustNewConstMetric(p.cpu, prometheus.GaugeValue, res.CPUPercent)
	for i, v := range res.PerCorePercent {
		ch <- prometheus.MustNewConstMetric(p.cpuCore, prometheus.GaugeValue, v, strconv.Itoa(i))
	}

	ch <- prometheus.MustNewConstMetric(p.memory, prometheus.GaugeValue, float64(res.MemoryTotal), "total")
	ch <- prometheus.MustNewConstMetric(p.memory, prometheus.GaugeValue, float64(res.MemoryUsed), "used")
	ch <- prometheus.MustNewConstMetric(p.memory, prometheus.GaugeValue, float64(res.MemoryAvailable), "available")

	ch <- prometheus.MustNewConstMetric(p.swap, prometheus.GaugeValue, float64(res.SwapTotal), "total")
	ch <- prometheus.MustNewConstMetric(p.swap, prometheus.GaugeValue, float64(res.SwapUsed), "used")
	ch <- prometheus.MustNewConstMetric(p.swap, prometheus.GaugeValue, float64(res.SwapFree), "free")

	for _, v := range res.Volumes {
		name, mount := labelValue(v.Name), labelValue(v.MountPoint)
		ch <- prometheus.MustNewConstMetric(p.volume, prometheus.GaugeValue, float64(v.Total), name, mount, "total")
		ch <- prometheus.MustNewConstMetric(p.volume, prometheus.GaugeValue, float64(v.Used), name, mount, "used")
		ch <- prometheus.MustNewConstMetric(p.volume, prometheus.GaugeValue, float64(v.Available), name, mount, "available")
	}

	ch <- prometheus.MustNewConstMetric(p.netBytes, prometheus.CounterValue, float64(res.Network.BytesSent), "sent")
	ch <- prometheus.MustNewConstMetric(p.netBytes, prometheus.CounterValue, float64(res.Network.BytesReceived), "received")
	ch <- prometheus.MustNewConstMetric(p.netPkts, prometheus.CounterValue, float64(res.Network.PacketsSent), "sent")
	ch <- prometheus.MustNewConstMetric(p.netPkts, prometheus.CounterValue, float64(res.Network.PacketsReceived), "received")

	ch <- prometheus.MustNewConstMetric(p.processes, prometheus.GaugeValue, float64(len(p.c.ListProcesses(ctx))))

	id := p.c.ReadIdentity(ctx)
	ch <- prometheus.MustNewConstMetric(p.uptime, prometheus.GaugeValue, float64(id.Uptime))
	ch <- prometheus.MustNewConstMetric(p.info, prometheus.GaugeValue, 1,
		labelValue(p.c.BackendName()), labelValue(id.OSName), labelValue(id.OSVersion),
		labelValue(id.KernelVersion), labelValue(id.CPUBrand))
}

// labelValue replaces invalid UTF-8, which Prometheus rejects in label
// values. Mount points and registry strings are raw bytes from the OS.
func labelValue(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}
