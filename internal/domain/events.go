package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventKeyPressed      EventType = "KeyPressed"
	EventSearchStarted   EventType = "SearchStarted"
	EventSearchCompleted EventType = "SearchCompleted"
	EventSearchFailed    EventType = "SearchFailed"
	EventSearchDiscarded EventType = "SearchDiscarded"
	EventFiltersChanged  EventType = "FiltersChanged"
	EventIssueOpened     EventType = "IssueOpened"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// KeyPressedEvent is emitted for key presses no focused element consumed
type KeyPressedEvent struct {
	Key          string
	InputFocused bool
}

func (e KeyPressedEvent) Type() EventType { return EventKeyPressed }

// SearchStartedEvent is emitted when a query is dispatched to the tracker
type SearchStartedEvent struct {
	Seq  int
	Term string
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchCompletedEvent is emitted when the latest query returned results
type SearchCompletedEvent struct {
	Seq     int
	Term    string
	Count   int
	Elapsed time.Duration
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when the latest query failed
type SearchFailedEvent struct {
	Seq     int
	Term    string
	Err     error
	Elapsed time.Duration
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// SearchDiscardedEvent is emitted when a superseded response arrives late
type SearchDiscardedEvent struct {
	Seq    int
	Latest int
}

func (e SearchDiscardedEvent) Type() EventType { return EventSearchDiscarded }

// FiltersChangedEvent is emitted with the full merged filter state
type FiltersChangedEvent struct {
	Filters FilterState
}

func (e FiltersChangedEvent) Type() EventType { return EventFiltersChanged }

// IssueOpenedEvent is emitted when the user navigates to an issue
type IssueOpenedEvent struct {
	URL string
}

func (e IssueOpenedEvent) Type() EventType { return EventIssueOpened }
