package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectStrategy(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name string
		size int64
		want TransferStrategy
	}{
		{"empty file", 0, SingleShot},
		{"small file", 5 * MB, SingleShot},
		{"just below threshold", MultipartThreshold - 1, SingleShot},
		{"exactly at threshold", MultipartThreshold, SingleShot},
		{"just above threshold", MultipartThreshold + 1, Multipart},
		{"large file", 4 * 1024 * MB, Multipart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.want, SelectStrategy(tt.size))
		})
	}
}

func TestPartRange(t *testing.T) {
	req := require.New(t)

	session := UploadSession{PartSize: 10 * MB, TotalParts: 15}
	fileSize := int64(145 * MB)

	offset, length := session.PartRange(1, fileSize)
	req.Equal(int64(0), offset)
	req.Equal(int64(10*MB), length)

	offset, length = session.PartRange(7, fileSize)
	req.Equal(int64(60*MB), offset)
	req.Equal(int64(10*MB), length)

	// Final part is shorter and never exceeds the file size.
	offset, length = session.PartRange(15, fileSize)
	req.Equal(int64(140*MB), offset)
	req.Equal(int64(5*MB), length)
}
