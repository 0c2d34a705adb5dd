package capture

import "sync"

const DefaultMaxBytes = 5 * 1024 * 1024 // 5MB kept in memory per stream

// streamBuffer holds the most recent maxBytes written to one stream. When
// more is written the oldest bytes are dropped, so a chatty test case cannot
// exhaust memory, while the bytes that are kept stay in write order.
type streamBuffer struct {
	maxBytes int

	mu       sync.Mutex
	total    int64
	contents []byte
}

func newStreamBuffer(maxBytes int) *streamBuffer {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &streamBuffer{maxBytes: maxBytes}
}

func (b *streamBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.total += int64(len(p))
	b.contents = append(b.contents, p...)
	if len(b.contents) > b.maxBytes {
		// Copy so the dropped prefix can be garbage collected.
		kept := make([]byte, b.maxBytes)
		copy(kept, b.contents[len(b.contents)-b.maxBytes:])
		b.contents = kept
	}
	return len(p), nil
}

func (b *streamBuffer) snapshot() (data []byte, total int64, truncated bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	data = make([]byte, len(b.contents))
	copy(data, b.contents)
	return data, b.total, int64(len(b.contents)) < b.total
}
