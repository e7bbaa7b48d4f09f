package chunker

// Engine bundles a fixed set of default options with statistics about
// the most recent successful call. Policy is immutable after
// construction: callers that need different options pass them explicitly
// to the WithOptions variants rather than mutating shared defaults.
//
// An Engine is not safe for concurrent use; give each goroutine its own
// instance.
type Engine struct {
	defaults            Options
	lastChunkCount      int
	lastTotalCharacters int
}

// NewEngine returns an engine that applies defaults when no options are
// supplied.
func NewEngine(defaults Options) *Engine {
	return &Engine{defaults: defaults}
}

// NewDefaultEngine returns an engine using DefaultOptions.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultOptions())
}

// DefaultOptions returns the engine's fixed defaults.
func (e *Engine) DefaultOptions() Options {
	return e.defaults
}

// ChunkText splits text using the engine defaults.
func (e *Engine) ChunkText(text string) ([]TextChunk, error) {
	return e.ChunkTextWithOptions(text, e.defaults)
}

// ChunkTextWithOptions splits text using the supplied options.
// Statistics are updated only when the call succeeds.
func (e *Engine) ChunkTextWithOptions(text string, opts Options) ([]TextChunk, error) {
	chunks, err := ChunkText(text, opts)
	if err != nil {
		return nil, err
	}
	e.record(len(chunks), len(text))
	return chunks, nil
}

// ChunkDocument splits a multi-page document using the engine defaults.
func (e *Engine) ChunkDocument(pages []string) ([]TextChunk, error) {
	return e.ChunkDocumentWithOptions(pages, e.defaults)
}

// ChunkDocumentWithOptions splits a multi-page document using the
// supplied options. Statistics are updated only when the call succeeds;
// the character total counts page content without separators.
func (e *Engine) ChunkDocumentWithOptions(pages []string, opts Options) ([]TextChunk, error) {
	chunks, err := ChunkDocument(pages, opts)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, page := range pages {
		total += len(page)
	}
	e.record(len(chunks), total)
	return chunks, nil
}

// ChunkCount returns the number of chunks produced by the last
// successful call.
func (e *Engine) ChunkCount() int {
	return e.lastChunkCount
}

// TotalCharacters returns the input size of the last successful call.
func (e *Engine) TotalCharacters() int {
	return e.lastTotalCharacters
}

// ResetStatistics clears both counters.
func (e *Engine) ResetStatistics() {
	e.lastChunkCount = 0
	e.lastTotalCharacters = 0
}

func (e *Engine) record(chunkCount, totalCharacters int) {
	e.lastChunkCount = chunkCount
	e.lastTotalCharacters = totalCharacters
}
