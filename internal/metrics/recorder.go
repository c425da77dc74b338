package metrics

import (
	"issuegrip/internal/domain"
	"issuegrip/internal/eventbus"
)

// Subscribe records search lifecycle events from the bus. The returned
// function removes every subscription it made.
func Subscribe(bus eventbus.EventBus, provider Provider, backend string) func() {
	unsubs := []func(){
		bus.Subscribe(domain.EventSearchCompleted, func(e domain.DomainEvent) {
			ev, ok := e.(domain.SearchCompletedEvent)
			if !ok {
				return
			}
			provider.ObserveSearchDuration(backend, OutcomeSuccess, ev.Elapsed.Seconds())
			provider.IncreaseSearchResults(backend, ev.Count)
		}),
		bus.Subscribe(domain.EventSearchFailed, func(e domain.DomainEvent) {
			ev, ok := e.(domain.SearchFailedEvent)
			if !ok {
				return
			}
			provider.ObserveSearchDuration(backend, OutcomeError, ev.Elapsed.Seconds())
		}),
		bus.Subscribe(domain.EventSearchDiscarded, func(e domain.DomainEvent) {
			provider.IncreaseStaleResponses(backend)
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
