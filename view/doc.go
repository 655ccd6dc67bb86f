// Package view implements the synchronization engine: a tree of typed,
// observable nodes whose properties mirror the fields of fixed-layout raw
// structures.
//
// A view type is an ordinary struct that embeds Node, tags bound properties
// with bind tags and implements RawLayout:
//
//	type Player struct {
//	    view.Node
//	    Health float32     `bind:"health"`
//	    Tint   marshal.RGB `bind:"tint"`
//	    Weapon *Weapon     `bind:"weapon"`
//	}
//
//	func (p *Player) RawLayout() *bind.Layout { return playerLayout }
//
// After view.Attach, SetModel replaces the node's raw snapshot and pushes
// every bound field into the properties (terminal bindings first, then
// nested ones, which become lazily constructed child nodes). Mutating a
// property and calling Changed pushes the value back into the raw snapshot
// and up through the ancestors.
//
// A reentrancy guard suppresses the upward path for the whole duration of a
// SetModel pass, so property assignments made by the engine never loop back
// into raw writes.
//
// Each node serializes its update body behind its own mutex. Subscribers
// are notified in subscription order after the mutex is released, so a
// handler may freely read the node it observes (ModelBytes, Child) or
// unsubscribe itself. All notifications are expected on the consumer's own
// goroutine; the package never spawns goroutines.
package view
