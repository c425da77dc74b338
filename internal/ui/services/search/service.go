package search

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"issuegrip/internal/domain"
	"issuegrip/internal/eventbus"
	"issuegrip/internal/issues"
	"issuegrip/internal/ui/state"
)

// Service owns the search term, debounced dispatch and the loading and
// visibility flags
type Service struct {
	state    *state.SearchState
	searcher issues.Searcher
	bus      eventbus.EventBus
	logger   *slog.Logger
	opts     Options
	filters  domain.FilterState

	generation int // latest scheduled debounce
	seq        int // latest issued request
}

// NewService creates a new search service
func NewService(st *state.SearchState, searcher issues.Searcher, bus eventbus.EventBus, logger *slog.Logger, opts Options, filters domain.FilterState) *Service {
	return &Service{
		state:    st,
		searcher: searcher,
		bus:      bus,
		logger:   logger,
		opts:     opts,
		filters:  filters,
	}
}

// State returns the shared search state
func (s *Service) State() *state.SearchState {
	return s.state
}

// Filters returns the current filter state
func (s *Service) Filters() domain.FilterState {
	return s.filters
}

// OnTermChange stores the term, drops the current results and schedules a
// debounced search. An empty term resets everything and schedules nothing.
func (s *Service) OnTermChange(term string) tea.Cmd {
	s.state.Term = term
	s.invalidate()

	if term == "" {
		s.state.Reset()
		return nil
	}

	s.state.ReplaceResults(nil)

	s.state.Loading = true
	return s.schedule()
}

// SetFilters replaces the filters and re-runs the search for the current term
func (s *Service) SetFilters(filters domain.FilterState) tea.Cmd {
	s.filters = filters
	s.invalidate()
	s.bus.Publish(domain.FiltersChangedEvent{Filters: filters})

	if s.state.Term == "" {
		s.state.Loading = false
		return nil
	}
	s.state.Loading = true
	return s.schedule()
}

// HandleDebounce dispatches the search if msg belongs to the latest window
func (s *Service) HandleDebounce(msg DebounceMsg) tea.Cmd {
	if msg.Generation != s.generation {
		return nil
	}
	return s.Search()
}

// Search issues one request for the current term and filters. The returned
// command runs off the update loop and only captures values.
func (s *Service) Search() tea.Cmd {
	term := s.state.Term
	if term == "" {
		s.state.Loading = false
		return nil
	}

	s.seq++
	seq := s.seq
	query := s.Query()
	searcher := s.searcher
	timeout := s.opts.Timeout

	s.state.Loading = true
	s.logger.Debug("dispatching issue search", "seq", seq, "term", term, "backend", searcher.Backend())
	s.bus.Publish(domain.SearchStartedEvent{Seq: seq, Term: term})

	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		start := time.Now()
		found, err := searcher.Search(ctx, query)
		return ResultMsg{
			Seq:     seq,
			Term:    term,
			Issues:  found,
			Err:     err,
			Elapsed: time.Since(start),
		}
	}
}

// Query builds the request for the current term
func (s *Service) Query() issues.Query {
	if !s.opts.UseFilters {
		return issues.Query{Term: s.state.Term}
	}
	return issues.NewQuery(s.state.Term, s.filters)
}

// HandleResult applies a search outcome. Responses superseded by a newer
// request are discarded. Failures leave a clean empty state.
func (s *Service) HandleResult(msg ResultMsg) {
	if msg.Seq != s.seq {
		s.logger.Debug("discarding stale search response", "seq", msg.Seq, "latest", s.seq, "term", msg.Term)
		s.bus.Publish(domain.SearchDiscardedEvent{Seq: msg.Seq, Latest: s.seq})
		return
	}

	s.state.Loading = false

	if msg.Err != nil {
		s.logger.Warn("issue search failed", "term", msg.Term, "error", msg.Err)
		s.state.Reset()
		s.bus.Publish(domain.SearchFailedEvent{Seq: msg.Seq, Term: msg.Term, Err: msg.Err, Elapsed: msg.Elapsed})
		return
	}

	results := msg.Issues
	if s.opts.MaxResults > 0 && len(results) > s.opts.MaxResults {
		results = results[:s.opts.MaxResults]
	}
	s.state.ReplaceResults(results)
	s.state.ResultsVisible = len(results) > 0
	s.bus.Publish(domain.SearchCompletedEvent{Seq: msg.Seq, Term: msg.Term, Count: len(results), Elapsed: msg.Elapsed})
}

// Reveal shows the results panel when it already has results
func (s *Service) Reveal() {
	if s.state.HasResults() {
		s.state.ResultsVisible = true
	}
}

// Dismiss hides the panel and returns focus to the input position, keeping
// the term and results
func (s *Service) Dismiss() {
	s.state.ResultsVisible = false
	s.state.FocusIndex = -1
}

// invalidate supersedes any pending debounce and in-flight request
func (s *Service) invalidate() {
	s.generation++
	s.seq++
}

func (s *Service) schedule() tea.Cmd {
	gen := s.generation
	if s.opts.Debounce <= 0 {
		return func() tea.Msg { return DebounceMsg{Generation: gen} }
	}
	return tea.Tick(s.opts.Debounce, func(time.Time) tea.Msg {
		return DebounceMsg{Generation: gen}
	})
}
