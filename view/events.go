package view

import "sync/atomic"

// Subscription identifies one registered handler for later removal.
type Subscription uint64

var subscriptionIDs atomic.Uint64

func nextSubscription() Subscription {
	return Subscription(subscriptionIDs.Add(1))
}

type subscriber[T any] struct {
	id Subscription
	fn T
}

// eventList keeps handlers in subscription order. Removal preserves the
// order of the remaining handlers.
type eventList[T any] struct {
	subs []subscriber[T]
}

// snapshot copies the subscriber list so a handler that unsubscribes
// itself mid-notification cannot shift the handlers still to be called.
func (l *eventList[T]) snapshot() []subscriber[T] {
	out := make([]subscriber[T], len(l.subs))
	copy(out, l.subs)
	return out
}

func (l *eventList[T]) add(fn T) Subscription {
	id := nextSubscription()
	l.subs = append(l.subs, subscriber[T]{id: id, fn: fn})
	return id
}

func (l *eventList[T]) remove(id Subscription) bool {
	for i, s := range l.subs {
		if s.id == id {
			l.subs = append(l.subs[:i], l.subs[i+1:]...)
			return true
		}
	}
	return false
}

// OnModelChanged subscribes to raw->view passes that changed at least one
// property. Fired at most once per SetModel call.
func (n *Node) OnModelChanged(fn func()) Subscription {
	return n.modelChanged.add(fn)
}

// OnViewModelChanged subscribes to effective view->raw writes.
func (n *Node) OnViewModelChanged(fn func()) Subscription {
	return n.viewModelChanged.add(fn)
}

// OnPropertyChanged subscribes to individual property writes in either
// direction.
func (n *Node) OnPropertyChanged(fn func(prop string)) Subscription {
	return n.propChanged.add(fn)
}

// Unsubscribe removes a handler from whichever event it was registered on.
// Long-lived trees must unsubscribe observers they drop.
func (n *Node) Unsubscribe(id Subscription) {
	if n.modelChanged.remove(id) {
		return
	}
	if n.viewModelChanged.remove(id) {
		return
	}
	n.propChanged.remove(id)
}

func (n *Node) notifyModelChanged() {
	for _, s := range n.modelChanged.snapshot() {
		s.fn()
	}
}

func (n *Node) notifyViewModelChanged() {
	for _, s := range n.viewModelChanged.snapshot() {
		s.fn()
	}
}

func (n *Node) notifyPropertyChanged(prop string) {
	for _, s := range n.propChanged.snapshot() {
		s.fn(prop)
	}
}
