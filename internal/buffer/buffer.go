package buffer

// Buffer is an arena hosting non-interrelated byte sequences (segments) in a single place.
// A segment may be written in several steps and is handed out once finished. Finished
// segments stay valid until Clear is called.
type Buffer struct {
	memory []byte
	begin  int
	// size counts every byte appended since the last Clear, including segments left
	// behind in a previous memory region after growing.
	size    int
	maxSize int
}

func New(initialSize, maxSize int) *Buffer {
	return &Buffer{
		memory:  make([]byte, 0, initialSize),
		maxSize: maxSize,
	}
}

// Append writes data into the current segment, checking whether the new amount of bytes
// doesn't exceed the limit, otherwise discarding the data and returning false.
func (b *Buffer) Append(data []byte) (ok bool) {
	if b.size+len(data) > b.maxSize {
		return false
	}

	if len(b.memory)+len(data) > cap(b.memory) {
		// finished segments are referenced by callers, so the old memory must not be
		// reused after growing. A fresh region only has to keep the current segment.
		segment := b.memory[b.begin:]
		grown := make([]byte, 0, max(2*cap(b.memory), len(segment)+len(data)))
		b.memory = append(grown, segment...)
		b.begin = 0
	}

	b.memory = append(b.memory, data...)
	b.size += len(data)
	return true
}

// SegmentLength returns a number of bytes taken by the current segment.
func (b *Buffer) SegmentLength() int {
	return len(b.memory) - b.begin
}

// Preview returns current segment without moving the head.
func (b *Buffer) Preview() []byte {
	return b.memory[b.begin:]
}

// Finish completes current segment, returning its value.
func (b *Buffer) Finish() []byte {
	segment := b.memory[b.begin:len(b.memory):len(b.memory)]
	b.begin = len(b.memory)

	return segment
}

// Clear resets the arena, so finished segments may be overridden by new ones.
func (b *Buffer) Clear() {
	b.begin = 0
	b.size = 0
	b.memory = b.memory[:0]
}
