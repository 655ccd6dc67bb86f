// Package rawview maintains a live, bidirectional mirror between a tree of
// typed observable view objects and a backing region of raw memory laid out
// as fixed-offset structures.
//
// Consumers read and write ordinary Go structs; the library propagates
// changes to and from the raw byte representation, including through nested
// sub-structures and pointer-style indirections.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	rawview/         Root package with the Source memory contracts
//	├── bind/        Field descriptors, layouts, per-type binding registry
//	├── view/        Synchronization engine and change notification
//	├── marshal/     Fixed-width byte window <-> typed value converters
//	├── resolve/     Byte address resolution through indirection chains
//	├── memsource/   Source implementations (buffers, WASM linear memory)
//	└── errors/      Structured error types for debugging
//
// # Quick Start
//
// Declare a raw layout and a view type, then bind them:
//
//	type PlayerRaw struct {
//	    Health float32        `raw:"@0x00"`
//	    Ammo   uint32         `raw:"@0x04"`
//	    Tint   marshal.RGB    `raw:"@0x08,type=rgb"`
//	}
//
//	type Player struct {
//	    view.Node
//	    Health float32      `bind:"health"`
//	    Ammo   uint32       `bind:"ammo"`
//	    Tint   marshal.RGB  `bind:"tint"`
//	}
//
//	func (p *Player) RawLayout() *bind.Layout { return playerLayout }
//
//	p := &Player{}
//	if err := view.Attach(p, view.WithSource(src)); err != nil {
//	    log.Fatal(err)
//	}
//	if err := p.SetModel(snapshot); err != nil { ... }
//
//	p.Health = 50
//	p.Changed("Health") // encodes back into the raw model
//
// # Data Flow
//
// Raw bytes -> resolve + marshal -> typed value -> property assignment ->
// change notification. Reverse: property mutation -> Changed -> marshal ->
// raw buffer at the resolved offset, propagated up through parent nodes.
//
// # Thread Safety
//
// Each node serializes its own raw<->view update body behind a per-node
// mutex. Property change notifications are expected on the same logical
// goroutine as the observing consumer; the library does not spawn
// goroutines of its own.
package rawview
