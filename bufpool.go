package codec

import (
	"bytes"
	"sync"
)

// bytesBufPool reuses growable sinks for Marshal. Buffers that grew past
// maxPooledBuffer are dropped so one large value does not pin memory.
var bytesBufPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

const maxPooledBuffer = 64 * 1024

func getBuffer() *bytes.Buffer {
	buf := bytesBufPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() <= maxPooledBuffer {
		bytesBufPool.Put(buf)
	}
}

const CHUNK_SIZE = 32 * 1024

// bufPool holds copy buffers for the reader WriteTo fallbacks.
var bufPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, CHUNK_SIZE)
		return &b
	},
}
