package transfer

import (
	"io"

	"mediaflow/observability"
)

// progressReader counts the bytes drained from the underlying reader. While a
// body is streaming the reported percent is clamped to 99; only a confirmed
// 2xx answer is allowed to report 100.
type progressReader struct {
	r       io.Reader
	total   int64
	sent    int64
	monitor *observability.TransferMonitor
	// onPercent receives a value in [0,99], already clamped.
	onPercent func(percent int)
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	if n > 0 {
		pr.sent += int64(n)
		if pr.monitor != nil {
			pr.monitor.IncrBytesSent(uint64(n))
		}
		if pr.onPercent != nil && pr.total > 0 {
			percent := int(pr.sent * 100 / pr.total)
			if percent > 99 {
				percent = 99
			}
			pr.onPercent(percent)
		}
	}
	return n, err
}
