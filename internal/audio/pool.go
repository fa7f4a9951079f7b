package audio

import "sync"

// ChunkSamples is the number of samples rendered per streamed chunk.
const ChunkSamples = 4096

// RenderBuffers holds pre-allocated buffers for the render→s16le pipeline.
// Used via sync.Pool so long renders stream in fixed-size chunks.
type RenderBuffers struct {
	Samples []int16 // cap: ChunkSamples
	Bytes   []byte  // cap: ChunkSamples*2
}

var renderPool = sync.Pool{
	New: func() interface{} {
		return &RenderBuffers{
			Samples: make([]int16, ChunkSamples),
			Bytes:   make([]byte, ChunkSamples*2),
		}
	},
}

// AcquireRenderBuffers gets a set of buffers from the pool.
func AcquireRenderBuffers() *RenderBuffers {
	return renderPool.Get().(*RenderBuffers)
}

// ReleaseRenderBuffers returns buffers to the pool.
func ReleaseRenderBuffers(b *RenderBuffers) {
	renderPool.Put(b)
}
