package autocomplete

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/librarr/catalog"
	"github.com/s0up4200/librarr/suggest"
)

// State is the autocomplete state of a title field
type State int

const (
	// StateIdle means no search is armed or running
	StateIdle State = iota
	// StatePending means a debounced search is armed
	StatePending
	// StateSearching means a search request is in flight
	StateSearching
	// StateResolved means the latest search has completed
	StateResolved
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateSearching:
		return "searching"
	case StateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// IsBusy reports whether a search is armed or in flight
func (s State) IsBusy() bool {
	return s == StatePending || s == StateSearching
}

// Searcher looks up suggestions for a partial title.
// *suggest.Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, title string) ([]suggest.Suggestion, error)
}

// Selection is the outcome of choosing a suggestion
type Selection struct {
	Title string
	// AuthorID is the matched local author, zero when nothing matched
	AuthorID int64
	// HasAuthor is false when the suggestion carried no author text,
	// in which case the current author choice should be kept
	HasAuthor bool
}

// FieldOption configures a Field.
type FieldOption func(*Field)

// WithDelay sets the debounce delay.
func WithDelay(delay time.Duration) FieldOption {
	return func(f *Field) {
		if delay >= 0 {
			f.debouncer = NewDebouncer(delay)
		}
	}
}

// WithOnResolved registers a callback run after each search resolves.
func WithOnResolved(fn func([]suggest.Suggestion)) FieldOption {
	return func(f *Field) {
		f.onResolved = fn
	}
}

// Field drives title autocomplete for one input.
// Every Input re-arms the debounce; when it fires the searcher is called and
// its result (or an empty list on failure) becomes the suggestion list.
type Field struct {
	ctx        context.Context
	searcher   Searcher
	debouncer  *Debouncer
	logger     zerolog.Logger
	onResolved func([]suggest.Suggestion)

	mu          sync.Mutex
	text        string
	state       State
	suggestions []suggest.Suggestion
	open        bool
	generation  uint64
	changed     chan struct{}
}

// NewField creates a title field. Searches run with ctx.
func NewField(ctx context.Context, searcher Searcher, logger zerolog.Logger, opts ...FieldOption) *Field {
	f := &Field{
		ctx:       ctx,
		searcher:  searcher,
		debouncer: NewDebouncer(DefaultDelay),
		logger:    logger,
		changed:   make(chan struct{}),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Input records a keystroke: the full current text of the field
func (f *Field) Input(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.text = text
	f.open = true
	f.generation++

	if !suggest.IsSearchable(text) {
		f.debouncer.Cancel()
		f.suggestions = nil
		f.setState(StateIdle)
		return
	}

	gen := f.generation
	f.setState(StatePending)
	// text is captured now, not read again when the timer fires
	f.debouncer.Schedule(func() {
		f.search(gen, text)
	})
}

func (f *Field) search(gen uint64, query string) {
	f.mu.Lock()
	if gen != f.generation {
		f.mu.Unlock()
		return
	}
	f.setState(StateSearching)
	f.mu.Unlock()

	results, err := f.searcher.Search(f.ctx, query)
	if err != nil {
		f.logger.Debug().Err(err).Str("query", query).Msg("Suggestion search failed")
		results = []suggest.Suggestion{}
	}

	f.mu.Lock()
	if gen != f.generation {
		f.mu.Unlock()
		return
	}
	f.suggestions = results
	f.setState(StateResolved)
	callback := f.onResolved
	f.mu.Unlock()

	if callback != nil {
		callback(results)
	}
}

// Select applies a chosen suggestion: the title is taken verbatim and the
// author text is resolved against the known authors. The list is closed
// whether or not an author matched.
func (f *Field) Select(s suggest.Suggestion, authors []catalog.Author) Selection {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.text = s.Title
	f.open = false
	f.generation++
	f.debouncer.Cancel()
	if f.state.IsBusy() {
		f.setState(StateResolved)
	}

	sel := Selection{Title: s.Title}
	if s.Author != "" {
		sel.HasAuthor = true
		sel.AuthorID, _ = MatchAuthor(s.Author, authors)
	}

	f.logger.Debug().
		Str("title", s.Title).
		Str("author", s.Author).
		Int64("author_id", sel.AuthorID).
		Msg("Suggestion selected")

	return sel
}

// Wait blocks until no search is armed or in flight and returns the state
func (f *Field) Wait(ctx context.Context) (State, error) {
	for {
		f.mu.Lock()
		state, changed := f.state, f.changed
		f.mu.Unlock()

		if !state.IsBusy() {
			return state, nil
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return state, ctx.Err()
		}
	}
}

// Reset clears the field, dropping any armed or in-flight search
func (f *Field) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.debouncer.Cancel()
	f.generation++
	f.text = ""
	f.suggestions = nil
	f.open = false
	f.setState(StateIdle)
}

// SetText replaces the text without triggering a search, as when a book is
// loaded for editing
func (f *Field) SetText(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.debouncer.Cancel()
	f.generation++
	f.text = text
	f.suggestions = nil
	f.open = false
	f.setState(StateIdle)
}

// Text returns the current field text
func (f *Field) Text() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.text
}

// State returns the current autocomplete state
func (f *Field) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Suggestions returns a copy of the current suggestion list
func (f *Field) Suggestions() []suggest.Suggestion {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]suggest.Suggestion(nil), f.suggestions...)
}

// IsOpen reports whether the suggestion list should be shown
func (f *Field) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open && len(f.suggestions) > 0
}

// setState must be called with mu held
func (f *Field) setState(state State) {
	f.state = state
	close(f.changed)
	f.changed = make(chan struct{})
}
