package core

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrNotReady is returned by view actions while no dataset is loaded or
	// an ingestion is pending. Controls are inert in that state.
	ErrNotReady = errors.New("no dataset ready")

	// ErrInvalidPageSize is returned for page sizes outside 1..MaxPageSize.
	ErrInvalidPageSize = errors.New("invalid page size")

	// ErrInvalidItemLimit is returned for non-positive chart item limits.
	ErrInvalidItemLimit = errors.New("invalid chart item limit")
)

// SessionStatus describes the dataset lifecycle of a session.
type SessionStatus string

const (
	StatusEmpty   SessionStatus = "empty"
	StatusLoading SessionStatus = "loading"
	StatusReady   SessionStatus = "ready"
	StatusFailed  SessionStatus = "failed"
)

// IngestTicket identifies one ingestion attempt. Only the ticket of the most
// recent attempt can deliver a dataset.
type IngestTicket struct {
	seq uint64
}

// Seq returns the attempt's sequence number.
func (t IngestTicket) Seq() uint64 { return t.seq }

// Session is the state of one user: the current dataset and its controls.
// All methods are safe for concurrent use; each runs to completion under
// the session lock.
type Session struct {
	ID string

	opts ViewOptions

	mu       sync.Mutex
	seq      uint64
	loading  bool
	dataset  *Dataset
	numeric  []string
	state    ViewState
	lastErr  error

	// lastSeen is kept outside mu so the store can check expiry while a
	// view is being built.
	lastSeen atomic.Int64
}

// NewSession returns an empty session.
func NewSession(id string, opts ViewOptions) *Session {
	s := &Session{ID: id, opts: opts}
	s.lastSeen.Store(time.Now().UnixNano())
	return s
}

// BeginIngest starts a new ingestion attempt, superseding any attempt still
// in flight, and puts the session in the loading state.
func (s *Session) BeginIngest() IngestTicket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.loading = true
	s.lastErr = nil
	return IngestTicket{seq: s.seq}
}

// FinishIngest applies the outcome of the attempt identified by t.
// It returns false, changing nothing, when a newer attempt has started since.
// A failure clears the dataset; a success replaces it and resets every control.
func (s *Session) FinishIngest(t IngestTicket, ds *Dataset, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.seq != s.seq {
		return false
	}
	s.loading = false

	if err != nil || ds == nil {
		if err == nil {
			err = ErrEmptyFile
		}
		s.dataset = nil
		s.numeric = nil
		s.state = ViewState{}
		s.lastErr = err
		return true
	}

	s.dataset = ds
	s.numeric = ClassifyNumeric(ds.Rows, ds.Headers, s.opts.NumericThreshold)
	s.state = DefaultViewState(ds.Headers, s.numeric, s.opts)
	s.lastErr = nil
	return true
}

// Fail records an error that stops an ingestion before it starts.
// It supersedes any pending attempt and clears the dataset.
func (s *Session) Fail(err error) {
	s.FinishIngest(s.BeginIngest(), nil, err)
}

// Status reports where the session is in the dataset lifecycle.
func (s *Session) Status() SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.loading:
		return StatusLoading
	case s.lastErr != nil:
		return StatusFailed
	case s.dataset != nil:
		return StatusReady
	default:
		return StatusEmpty
	}
}

// Err returns the error of the last finished ingestion, if it failed.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Dataset returns the current dataset, or nil.
func (s *Session) Dataset() *Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataset
}

// State returns a copy of the current controls.
func (s *Session) State() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyStateLocked()
}

// View builds the view-model for the current dataset and controls.
func (s *Session) View() ViewModel {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return ViewModel{Loading: true, PageSizeOptions: PageSizeOptions}
	}

	vm, st := BuildView(s.dataset, s.numeric, s.copyStateLocked())
	s.state = st
	if s.lastErr != nil {
		msg := MapError(s.lastErr)
		vm.Error = &msg
	}
	return vm
}

// VisibleRows returns the sorted and filtered rows across all pages.
func (s *Session) VisibleRows() ([]string, []Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.readyLocked(); err != nil {
		return nil, nil, err
	}
	return s.dataset.Headers, VisibleRows(s.dataset, s.state), nil
}

// ToggleSort applies the header-click rule to column.
func (s *Session) ToggleSort(column string) error {
	return s.update(func() error {
		if !s.dataset.HasColumn(column) {
			return fmt.Errorf("sort %q: %w", column, ErrUnknownColumn)
		}
		s.state.Sort = ToggleSort(s.state.Sort, column)
		return nil
	})
}

// SetFilter replaces the filter and re-clamps the current page.
func (s *Session) SetFilter(column, query string) error {
	return s.update(func() error {
		if column == "" {
			column = FilterAllColumns
		}
		if column != FilterAllColumns && !s.dataset.HasColumn(column) {
			return fmt.Errorf("filter %q: %w", column, ErrUnknownColumn)
		}
		s.state.Filter = FilterState{Column: column, Query: query}
		s.clampPageLocked()
		return nil
	})
}

// SetPageSize changes the page size and returns to the first page.
func (s *Session) SetPageSize(size int) error {
	return s.update(func() error {
		if !ValidPageSize(size) {
			return fmt.Errorf("%w: %d", ErrInvalidPageSize, size)
		}
		s.state.Pagination = PaginationState{PageSize: size, CurrentPage: 1}
		return nil
	})
}

// GoToPage handles the page-jump input. Invalid input leaves the page
// unchanged. It returns the page now shown and whether the input was accepted.
func (s *Session) GoToPage(input string) (int, bool) {
	var page int
	var ok bool
	_ = s.update(func() error {
		total := s.totalPagesLocked()
		page, ok = ParsePageInput(input, ClampPage(s.state.Pagination.CurrentPage, total), total)
		s.state.Pagination.CurrentPage = page
		return nil
	})
	return page, ok
}

// NextPage moves forward one page, stopping at the last.
func (s *Session) NextPage() error {
	return s.update(func() error {
		total := s.totalPagesLocked()
		s.state.Pagination.CurrentPage = ClampPage(s.state.Pagination.CurrentPage+1, total)
		return nil
	})
}

// PrevPage moves back one page, stopping at the first.
func (s *Session) PrevPage() error {
	return s.update(func() error {
		total := s.totalPagesLocked()
		s.state.Pagination.CurrentPage = ClampPage(s.state.Pagination.CurrentPage-1, total)
		return nil
	})
}

// SetXAxis selects the chart category column.
func (s *Session) SetXAxis(column string) error {
	return s.update(func() error {
		st, err := SelectXAxis(s.state.Chart, s.dataset.Headers, s.numeric, column)
		if err != nil {
			return err
		}
		s.state.Chart = st
		return nil
	})
}

// SetYAxis selects the chart value column.
func (s *Session) SetYAxis(column string) error {
	return s.update(func() error {
		st, err := SelectYAxis(s.state.Chart, s.numeric, column)
		if err != nil {
			return err
		}
		s.state.Chart = st
		return nil
	})
}

// SetChartLimit sets how many rows the chart plots.
func (s *Session) SetChartLimit(limit int) error {
	return s.update(func() error {
		if limit <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidItemLimit, limit)
		}
		s.state.Chart.ItemLimit = limit
		return nil
	})
}

// Touch records activity for idle expiry.
func (s *Session) Touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// LastSeen returns the time of the last recorded activity.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// update runs fn under the lock when a dataset is ready.
func (s *Session) update(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.readyLocked(); err != nil {
		return err
	}
	return fn()
}

func (s *Session) readyLocked() error {
	if s.loading || s.dataset == nil {
		return ErrNotReady
	}
	return nil
}

func (s *Session) totalPagesLocked() int {
	n := len(FilterRows(s.dataset.Rows, s.state.Filter))
	return TotalPages(n, s.state.Pagination.PageSize)
}

func (s *Session) clampPageLocked() {
	s.state.Pagination.CurrentPage = ClampPage(s.state.Pagination.CurrentPage, s.totalPagesLocked())
}

func (s *Session) copyStateLocked() ViewState {
	st := s.state
	if st.Sort != nil {
		sort := *st.Sort
		st.Sort = &sort
	}
	return st
}
