package renderer

import (
	"sync"

	"github.com/ryanlewis/tinyfmt/internal/common"
	"github.com/ryanlewis/tinyfmt/internal/parser"
	"github.com/ryanlewis/tinyfmt/internal/sink"
)

const (
	// defaultStringBuffer covers most single-line console messages
	defaultStringBuffer = 256

	// maxRetainStringBuffer keeps an occasional huge render from pinning
	// memory in the pool
	maxRetainStringBuffer = 64 << 10
)

// stringBufferPool manages the scratch buffers String renders into.
var stringBufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 0, defaultStringBuffer)
		return &buf
	},
}

// acquireStringBuffer gets an empty scratch buffer from the pool
func acquireStringBuffer() *[]byte {
	bufPtr := stringBufferPool.Get().(*[]byte)
	*bufPtr = (*bufPtr)[:0]
	return bufPtr
}

// releaseStringBuffer returns a scratch buffer to the pool
func releaseStringBuffer(bufPtr *[]byte) {
	if bufPtr == nil || cap(*bufPtr) > maxRetainStringBuffer {
		return
	}
	stringBufferPool.Put(bufPtr)
}

// String renders format into a new string.
func String(format string, args []common.Arg, opts *Options) string {
	bufPtr := acquireStringBuffer()
	defer releaseStringBuffer(bufPtr)

	b := &sink.Builder{Buf: *bufPtr}
	Render(b, format, args, opts)
	*bufPtr = b.Buf
	return string(b.Buf)
}

// StringTokens is String over pre-parsed tokens.
func StringTokens(tokens []parser.Token, format string, args []common.Arg, opts *Options) string {
	bufPtr := acquireStringBuffer()
	defer releaseStringBuffer(bufPtr)

	b := &sink.Builder{Buf: *bufPtr}
	RenderTokens(b, tokens, format, args, opts)
	*bufPtr = b.Buf
	return string(b.Buf)
}
