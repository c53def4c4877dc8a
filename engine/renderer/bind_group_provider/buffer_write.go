package bind_group_provider

// BufferWrite describes a single GPU buffer write operation targeting a specific binding
// on a BindGroupProvider at a given byte offset.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// BufferWriter accepts queued buffer writes. The Renderer implements it; tests may record writes instead.
type BufferWriter interface {
	// WriteBuffers uploads each write to its provider's buffer.
	//
	// Parameters:
	//   - writes: the writes to apply in order
	WriteBuffers(writes []BufferWrite)
}
