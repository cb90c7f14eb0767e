package rules

import (
	"slices"
	"sync"
)

// Watcher derives tallies from the events of a match.
type Watcher interface {
	// Key identifies the watcher inside a WatcherSet.
	Key() string
	// Watch receives every event published on the match bus.
	Watch(event Event)
	// EndRound is called each time the round counter advances.
	EndRound()
}

// WatcherSet fans events out to its watchers in the order they were added.
type WatcherSet struct {
	mu   sync.RWMutex
	list []Watcher
}

// NewWatcherSet returns an empty set.
func NewWatcherSet() *WatcherSet {
	return &WatcherSet{}
}

// Add registers w. A watcher with the same key is replaced in place.
func (s *WatcherSet) Add(w Watcher) {
	if w == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(w.Key()); i >= 0 {
		s.list[i] = w
		return
	}
	s.list = append(s.list, w)
}

// Remove drops the watcher registered under key and reports whether one was.
func (s *WatcherSet) Remove(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(key)
	if i < 0 {
		return false
	}
	s.list = slices.Delete(s.list, i, i+1)
	return true
}

// Get returns the watcher registered under key, or nil.
func (s *WatcherSet) Get(key string) Watcher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.index(key); i >= 0 {
		return s.list[i]
	}
	return nil
}

// Len returns the number of watchers.
func (s *WatcherSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.list)
}

// Watch forwards event to every watcher.
func (s *WatcherSet) Watch(event Event) {
	for _, w := range s.snapshot() {
		w.Watch(event)
	}
}

// EndRound tells every watcher the round is over.
func (s *WatcherSet) EndRound() {
	for _, w := range s.snapshot() {
		w.EndRound()
	}
}

// Attach subscribes the set to bus and returns the subscription handle.
func (s *WatcherSet) Attach(bus *EventBus) int {
	return bus.Subscribe(s.Watch)
}

// snapshot lets watchers publish or register while being notified.
func (s *WatcherSet) snapshot() []Watcher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.list)
}

func (s *WatcherSet) index(key string) int {
	return slices.IndexFunc(s.list, func(w Watcher) bool { return w.Key() == key })
}
