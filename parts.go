package scabi

// PartsHolder is an ordered sequence of binary parts with a forward-only read focus.
// Writers append parts; readers consume them one at a time.
type PartsHolder struct {
	parts       [][]byte
	focusedPart int
}

// NewPartsHolder wraps parts for reading, or starts empty for writing when parts is nil.
func NewPartsHolder(parts [][]byte) *PartsHolder {
	return &PartsHolder{parts: parts}
}

// Parts returns the held parts.
func (h *PartsHolder) Parts() [][]byte {
	if h.parts == nil {
		return [][]byte{}
	}
	return h.parts
}

// NumParts returns the number of held parts.
func (h *PartsHolder) NumParts() int {
	return len(h.parts)
}

// FocusedPartIndex returns the index of the part the next read will return.
func (h *PartsHolder) FocusedPartIndex() int {
	return h.focusedPart
}

// AppendEmptyPart starts a new part.
func (h *PartsHolder) AppendEmptyPart() {
	h.parts = append(h.parts, []byte{})
}

// AppendToLastPart extends the part currently being built.
func (h *PartsHolder) AppendToLastPart(data []byte) error {
	if len(h.parts) == 0 {
		return ErrLastPartMissing
	}
	last := len(h.parts) - 1
	h.parts[last] = append(h.parts[last], data...)
	return nil
}

// ReadWholeFocusedPart returns the focused part without moving the focus.
func (h *PartsHolder) ReadWholeFocusedPart() ([]byte, error) {
	if h.IsFocusedBeyondLastPart() {
		return nil, ErrMissingPart
	}
	return h.parts[h.focusedPart], nil
}

// FocusOnNextPart moves the focus forward by one part.
func (h *PartsHolder) FocusOnNextPart() error {
	if h.IsFocusedBeyondLastPart() {
		return ErrMissingPart
	}
	h.focusedPart++
	return nil
}

// IsFocusedBeyondLastPart reports whether every part has been read.
func (h *PartsHolder) IsFocusedBeyondLastPart() bool {
	return h.focusedPart >= len(h.parts)
}
