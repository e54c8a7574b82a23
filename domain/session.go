package domain

// PartResult records one successfully uploaded part. For a completed session
// the part numbers form exactly {1..TotalParts}, each appearing once, and the
// completion request lists them in ascending order.
type PartResult struct {
	PartNumber int    `json:"part_number" validate:"required,gt=0"`
	ETag       string `json:"etag" validate:"required"`
}

// UploadSession describes an open multipart session. It is owned exclusively
// by the transfer invocation that created it and must not outlive the
// completion or abort call.
type UploadSession struct {
	UploadID   string
	FileID     string
	TotalParts int
	PartSize   int64
}

// PartRange returns the byte range [offset, offset+length) of part p
// (1-based). The final part may be shorter than PartSize; the range never
// exceeds the file size.
func (s UploadSession) PartRange(p int, fileSize int64) (offset, length int64) {
	offset = int64(p-1) * s.PartSize
	end := offset + s.PartSize
	if end > fileSize {
		end = fileSize
	}
	return offset, end - offset
}
