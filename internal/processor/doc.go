// Package processor orchestrates the chunking pipeline and is the sole
// entry point external collaborators use.
//
// The orchestration order is fixed and non-negotiable for
// reproducibility:
//
//	detect type (if not supplied)
//	cache lookup
//	on miss: strategy split -> validate -> merge -> cache store
//	return
//
// # Basic Usage
//
//	p := processor.New(0)
//	resp, err := p.ChunkContent(processor.Request{Content: text})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, chunk := range resp.Chunks {
//	    fmt.Printf("chunk %d [%d:%d) score=%.2f\n",
//	        chunk.Metadata.Index,
//	        chunk.Metadata.StartOffset, chunk.Metadata.EndOffset,
//	        chunk.Metadata.QualityScore)
//	}
//
// # Caching
//
// The processor owns the cache's lifecycle: process-scoped, lazily
// initialized, explicit ClearCache/InvalidateCache operations. Only the
// processor touches the cache. Strategies, the validator, and the
// merger are pure with respect to caching, keeping cache semantics
// centralized and testable in isolation from splitting logic.
//
// # Concurrency
//
// ChunkContent calls for different content are independent and safe to
// run concurrently; the cache is the only shared state. ChunkBatch runs
// a request slice with bounded parallelism:
//
//	responses, err := p.ChunkBatch(ctx, requests)
package processor
