package packet

// Writer appends fields to a growable byte buffer in SA-MP wire order
// (little-endian). Unlike the fixed-capacity Writer this is modeled on, SA-MP
// requests vary in size (an RCON command payload can run to 1024+ bytes), so
// this Writer grows its buffer on demand instead of pre-sizing it.
type Writer struct {
	buffer []byte
}

// NewWriter returns an empty Writer with capacity hint n.
func NewWriter(n int) *Writer {
	return &Writer{buffer: make([]byte, 0, n)}
}

// WriteByte appends a single byte.
func (w *Writer) WriteByte(v byte) {
	w.buffer = append(w.buffer, v)
}

// WriteUint16 appends a little-endian uint16.
func (w *Writer) WriteUint16(v uint16) {
	var b [2]byte
	networkOrder.PutUint16(b[:], v)
	w.buffer = append(w.buffer, b[:]...)
}

// WriteUint32 appends a little-endian uint32.
func (w *Writer) WriteUint32(v uint32) {
	var b [4]byte
	networkOrder.PutUint32(b[:], v)
	w.buffer = append(w.buffer, b[:]...)
}

// WriteSlice appends raw bytes verbatim.
func (w *Writer) WriteSlice(p []byte) {
	w.buffer = append(w.buffer, p...)
}

// WriteString appends the raw bytes of s (no length prefix; callers write
// the prefix themselves via WriteByte/WriteUint16 to match the field's
// declared width).
func (w *Writer) WriteString(s string) {
	w.buffer = append(w.buffer, s...)
}

// WriteStringU8 appends a 1-byte length prefix followed by s's bytes.
func (w *Writer) WriteStringU8(s string) {
	w.WriteByte(byte(len(s)))
	w.WriteString(s)
}

// WriteStringU16 appends a 2-byte little-endian length prefix followed by
// s's bytes.
func (w *Writer) WriteStringU16(s string) {
	w.WriteUint16(uint16(len(s)))
	w.WriteString(s)
}

// WriteStringU32 appends a 4-byte little-endian length prefix followed by
// s's bytes.
func (w *Writer) WriteStringU32(s string) {
	w.WriteUint32(uint32(len(s)))
	w.WriteString(s)
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buffer)
}

// Bytes returns the bytes written so far. The returned slice aliases the
// Writer's internal buffer and must not be retained across further writes.
func (w *Writer) Bytes() []byte {
	return w.buffer
}
