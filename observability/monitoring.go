package observability

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// TransferStats aggregates the pipeline metrics exposed to callers.
type TransferStats struct {
	NetSpeedMBs    float64 `json:"net_speed_mbs"` // MB/s over the last window
	BytesSent      uint64  `json:"bytes_sent"`
	FilesCompleted uint64  `json:"files_completed"`
	FilesFailed    uint64  `json:"files_failed"`
	PartsUploaded  uint64  `json:"parts_uploaded"`
	AbortsIssued   uint64  `json:"aborts_issued"`
	QueueSize      int     `json:"queue_size"`
	AllocMemMb     uint64  `json:"alloc_mem_mb"`
	NumGC          uint32  `json:"num_gc"`
}

// TransferMonitor collects transfer telemetry. Counters are atomic so the
// upload path never takes a lock while streaming bytes.
type TransferMonitor struct {
	log         *slog.Logger
	mu          sync.RWMutex
	latestStats TransferStats
	lastCheck   time.Time

	windowBytes    uint64
	bytesSent      uint64
	filesCompleted uint64
	filesFailed    uint64
	partsUploaded  uint64
	abortsIssued   uint64
}

func NewTransferMonitor(log *slog.Logger) *TransferMonitor {
	return &TransferMonitor{log: log, lastCheck: time.Now()}
}

func (m *TransferMonitor) IncrBytesSent(n uint64) {
	atomic.AddUint64(&m.windowBytes, n)
	atomic.AddUint64(&m.bytesSent, n)
}

func (m *TransferMonitor) IncrFilesCompleted() { atomic.AddUint64(&m.filesCompleted, 1) }
func (m *TransferMonitor) IncrFilesFailed()    { atomic.AddUint64(&m.filesFailed, 1) }
func (m *TransferMonitor) IncrPartsUploaded()  { atomic.AddUint64(&m.partsUploaded, 1) }
func (m *TransferMonitor) IncrAbortsIssued()   { atomic.AddUint64(&m.abortsIssued, 1) }

func (m *TransferMonitor) UpdateQueue(size int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latestStats.QueueSize = size
}

// Refresh recomputes the throughput window and system metrics.
func (m *TransferMonitor) Refresh() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	duration := now.Sub(m.lastCheck).Seconds()
	if duration > 0 {
		window := atomic.SwapUint64(&m.windowBytes, 0)
		m.latestStats.NetSpeedMBs = (float64(window) / 1024 / 1024) / duration
	}
	m.lastCheck = now

	m.latestStats.BytesSent = atomic.LoadUint64(&m.bytesSent)
	m.latestStats.FilesCompleted = atomic.LoadUint64(&m.filesCompleted)
	m.latestStats.FilesFailed = atomic.LoadUint64(&m.filesFailed)
	m.latestStats.PartsUploaded = atomic.LoadUint64(&m.partsUploaded)
	m.latestStats.AbortsIssued = atomic.LoadUint64(&m.abortsIssued)

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.latestStats.AllocMemMb = ms.Alloc / 1024 / 1024
	m.latestStats.NumGC = ms.NumGC
}

func (m *TransferMonitor) GetLatest() TransferStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latestStats
}
