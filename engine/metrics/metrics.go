// Package metrics exports per-frame draw statistics to Prometheus.
package metrics

import (
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hubastard/imgrove/engine/draw"
	"github.com/hubastard/imgrove/engine/ui"
)

const namespace = "imgrove"

// Frame holds the gauges and histogram updated once per rendered frame.
type Frame struct {
	drawCalls prometheus.Gauge
	vertices  prometheus.Gauge
	indices   prometheus.Gauge
	textures  prometheus.Gauge
	frames    prometheus.Counter
	frameTime prometheus.Histogram
}

// NewFrame registers the frame metrics with reg; a nil reg uses the
// default registerer.
func NewFrame(reg prometheus.Registerer) *Frame {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Frame{
		drawCalls: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "draw_calls",
			Help:      "Non-empty draw commands submitted in the last frame.",
		}),
		vertices: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "vertices",
			Help:      "Vertices submitted in the last frame.",
		}),
		indices: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "indices",
			Help:      "Indices submitted in the last frame.",
		}),
		textures: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "textures_bound",
			Help:      "Distinct textures bound in the last frame.",
		}),
		frames: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames rendered since start.",
		}),
		frameTime: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_seconds",
			Help:      "Wall time between consecutive frames.",
			Buckets:   []float64{1.0 / 240, 1.0 / 144, 1.0 / 120, 1.0 / 60, 1.0 / 30, 1.0 / 15, 0.25},
		}),
	}
}

// Observe records one frame.
func (f *Frame) Observe(s draw.Statistics, dt time.Duration) {
	f.drawCalls.Set(float64(s.DrawCalls))
	f.vertices.Set(float64(s.VertexCount))
	f.indices.Set(float64(s.IndexCount))
	f.textures.Set(float64(s.TextureCount))
	f.frames.Inc()
	if dt > 0 {
		f.frameTime.Observe(dt.Seconds())
	}
}

// Serve exposes g on addr at /metrics in the background. The returned
// server is shut down by the caller.
func Serve(addr string, g prometheus.Gatherer) (*http.Server, error) {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: ln.Addr().String(), Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ui.Logger().Warn("metrics: server stopped", "err", err)
		}
	}()
	ui.Logger().Info("metrics: serving", "addr", srv.Addr)
	return srv, nil
}
