package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	uploadsTotal       atomic.Uint64
	uploadsFailedTotal atomic.Uint64
	softDeletesTotal   atomic.Uint64
	hardDeletesTotal   atomic.Uint64

	uploadSize = newHistogram([]float64{1 << 10, 16 << 10, 128 << 10, 1 << 20, 4 << 20, 10 << 20})
)

// IncUpload increments the upload counter and records the blob size.
func IncUpload(sizeBytes int64) {
	uploadsTotal.Add(1)
	if sizeBytes < 0 {
		sizeBytes = 0
	}
	uploadSize.Observe(float64(sizeBytes))
}

// IncUploadFailed increments the failed-upload counter.
func IncUploadFailed() {
	uploadsFailedTotal.Add(1)
}

// IncSoftDelete increments the soft-delete counter.
func IncSoftDelete() {
	softDeletesTotal.Add(1)
}

// IncHardDelete increments the hard-delete counter.
func IncHardDelete() {
	hardDeletesTotal.Add(1)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "documents_uploaded_total", "Total documents uploaded", uploadsTotal.Load())
	writeCounter(&buf, "documents_upload_failed_total", "Total document uploads that failed", uploadsFailedTotal.Load())
	writeCounter(&buf, "documents_soft_deleted_total", "Total documents soft-deleted", softDeletesTotal.Load())
	writeCounter(&buf, "documents_hard_deleted_total", "Total documents hard-deleted", hardDeletesTotal.Load())
	writeHistogram(&buf, "document_upload_size_bytes", "Uploaded document size in bytes", uploadSize.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=%q} %d\n", name, strconv.FormatFloat(bound, 'f', -1, 64), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %g\n", name, snap.sum)
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}
