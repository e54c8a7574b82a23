package domain

// TransferStrategy decides how a file body reaches object storage.
type TransferStrategy int

const (
	SingleShot TransferStrategy = iota
	Multipart
)

func (s TransferStrategy) String() string {
	if s == Multipart {
		return "multipart"
	}
	return "single"
}

// MultipartThreshold is the size above which a file is uploaded in parts.
const MultipartThreshold = 100 * MB

// DefaultPartSize is used when the backend gives no recommended part size.
const DefaultPartSize = 10 * MB

// SelectStrategy maps a file size to a transfer strategy. Pure, no error
// conditions: sizes up to the threshold go single-shot, everything larger
// goes multipart.
func SelectStrategy(sizeBytes int64) TransferStrategy {
	if sizeBytes > MultipartThreshold {
		return Multipart
	}
	return SingleShot
}
