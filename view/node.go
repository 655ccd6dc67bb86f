package view

import (
	"bytes"
	"reflect"
	"sync"

	"go.uber.org/zap"

	"github.com/rawview/rawview"
	"github.com/rawview/rawview/bind"
	"github.com/rawview/rawview/errors"
	"github.com/rawview/rawview/resolve"
)

// Viewer is implemented by every view type: a struct pointer embedding Node
// and declaring its raw layout.
type Viewer interface {
	bind.Viewer
	node() *Node
}

// ModelToViewHook is implemented by view types that want a callback after
// the engine assigns a property from raw bytes.
type ModelToViewHook interface {
	OnModelToView(prop string)
}

// ViewToModelHook is implemented by view types that want to replace the
// default upward propagation after an effective raw write. Implementations
// that still want the default behavior call PropagateUp themselves.
type ViewToModelHook interface {
	OnViewToModel(prop string)
}

// Node is the synchronization engine for one view object. Embed it in a
// struct, tag bound properties and call Attach before use.
type Node struct {
	mu sync.Mutex

	viewer Viewer
	self   reflect.Value // the embedding struct, addressable
	reg    *bind.Registry

	// model is the node's raw snapshot, exclusively owned and replaced
	// wholesale by SetModel. Never nil after Attach.
	model []byte

	source rawview.Source
	base   uint64

	parent     *Node
	parentProp string
	children   map[string]Viewer

	enabled  bool
	attached bool

	// suppress blocks the upward path while a raw->view pass assigns
	// properties. It is the engine's reentrancy guard.
	suppress bool

	modelChanged     eventList[func()]
	viewModelChanged eventList[func()]
	propChanged      eventList[func(string)]
}

func (n *Node) node() *Node { return n }

// Option configures a node at Attach time.
type Option func(*Node)

// WithSource gives the node access to the target memory region. Fields with
// indirection chains are read and written through it, and SetModel checks
// its liveness before mutating anything.
func WithSource(src rawview.Source) Option {
	return func(n *Node) { n.source = src }
}

// WithBase sets the structure's base address in the target address space.
// Indirection chains resolve relative to it.
func WithBase(addr uint64) Option {
	return func(n *Node) { n.base = addr }
}

// Attach initializes a view node: the binding registry is resolved (built
// once per type, cached globally), and the model becomes a default-
// initialized snapshot of the layout's size. Declaration mistakes surface
// here, never later.
func Attach(v Viewer, opts ...Option) error {
	n := v.node()
	if n.attached {
		return errors.New(errors.PhaseCompile, errors.KindInvalidData).
			GoType(reflect.TypeOf(v).String()).
			Detail("node is already attached").
			Build()
	}

	reg, err := bind.RegistryFor(v)
	if err != nil {
		return err
	}

	n.viewer = v
	n.self = reflect.ValueOf(v).Elem()
	n.reg = reg
	n.model = make([]byte, reg.Layout.Size)
	n.children = make(map[string]Viewer)
	n.enabled = true
	for _, o := range opts {
		o(n)
	}
	n.attached = true
	return nil
}

// Enabled reports whether propagation is active.
func (n *Node) Enabled() bool { return n.enabled }

// SetEnabled gates propagation. While disabled, Changed and ReadChanges are
// inert.
func (n *Node) SetEnabled(enabled bool) { n.enabled = enabled }

// Source returns the node's memory source, if any.
func (n *Node) Source() rawview.Source { return n.source }

// Base returns the structure's base address in the target address space.
func (n *Node) Base() uint64 { return n.base }

// ModelBytes returns a copy of the node's current raw snapshot.
func (n *Node) ModelBytes() []byte {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]byte, len(n.model))
	copy(out, n.model)
	return out
}

// Child returns the cached child node for a nested property, or nil if none
// has been constructed yet.
func (n *Node) Child(prop string) Viewer {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.children[prop]
}

// Parent returns the owning node and the parent property this node mirrors.
func (n *Node) Parent() (Viewer, string) {
	if n.parent == nil {
		return nil, ""
	}
	return n.parent.viewer, n.parentProp
}

// Path returns the node's type name chained through its ancestors. For
// diagnostics only.
func (n *Node) Path() string {
	name := "(unattached)"
	if n.reg != nil {
		name = n.reg.ViewType.Name()
	}
	if n.parent != nil {
		return n.parent.Path() + "." + name
	}
	return name
}

// FieldOffset returns the declared byte offset behind a property or raw
// field name.
func (n *Node) FieldOffset(name string) (uint32, error) {
	if !n.attached {
		return 0, errors.NotInitialized("node")
	}
	if e, ok := n.reg.Entry(name); ok {
		return e.Field.Offset, nil
	}
	if f, ok := n.reg.Layout.Field(name); ok {
		return f.Offset, nil
	}
	return 0, errors.PropertyUnknown(errors.PhaseCompile, name)
}

// SetModel rebinds the node to a new raw snapshot and resynchronizes every
// bound property, terminal bindings first, then nested child nodes. The
// suppression guard is held for the whole pass, so no property assignment
// loops back into a raw write. ModelChanged fires at most once, after the
// pass, if any property changed.
func (n *Node) SetModel(raw []byte) error {
	if !n.attached {
		return errors.NotInitialized("node")
	}
	if n.source != nil && !n.source.IsAlive() {
		return errors.DeadSource("external data source unavailable")
	}

	var pending pendingNotifies
	n.mu.Lock()
	_, err := n.setModelLocked(raw, &pending)
	n.mu.Unlock()
	pending.flush()
	return err
}

// pendingNotifies collects subscriber notifications and view hooks raised
// while a node's mutex is held. The mutex covers the update body only;
// callbacks run after it is released, so a handler may call any locking
// accessor on the node. Upward propagation is queued the same way, which
// keeps a child's mutex and its parent's from ever interleaving.
type pendingNotifies []func()

func (p *pendingNotifies) add(fn func()) { *p = append(*p, fn) }

func (p pendingNotifies) flush() {
	for _, fn := range p {
		fn()
	}
}

func (n *Node) setModelLocked(raw []byte, pending *pendingNotifies) (bool, error) {
	if len(raw) != len(n.model) {
		return false, errors.SizeMismatch(errors.PhaseSync, len(n.model), len(raw))
	}

	copy(n.model, raw)

	n.suppress = true
	defer func() { n.suppress = false }()

	anyChanged := false
	for _, e := range n.reg.Terminal {
		if n.applyTerminal(e, pending) {
			anyChanged = true
		}
	}
	for _, e := range n.reg.Nested {
		changed, err := n.applyNested(e, pending)
		if err != nil {
			return anyChanged, err
		}
		if changed {
			anyChanged = true
		}
	}

	incModelToView()
	if anyChanged {
		pending.add(n.notifyModelChanged)
	}
	return anyChanged, nil
}

// applyTerminal pushes one terminal field into its property. Returns true
// when the property changed.
func (n *Node) applyTerminal(e *bind.Entry, pending *pendingNotifies) bool {
	rhs, absent := n.readFieldValue(e)
	if absent && !e.Optional {
		// Absence is not representable on a value-typed property;
		// the field is skipped for this cycle.
		return false
	}

	cur, curAbsent := n.propertyValue(e)

	changed := absent != curAbsent
	if !changed && !absent {
		changed = !reflect.DeepEqual(cur, rhs)
	}
	if !changed {
		return false
	}

	n.setPropertyValue(e, rhs, absent)
	n.queuePropertyApplied(e.Property, pending)
	return true
}

// applyNested resynchronizes one child node from its window in the model.
// The child's own notifications join the caller's queue, so they run only
// once every mutex along the pass is released.
func (n *Node) applyNested(e *bind.Entry, pending *pendingNotifies) (bool, error) {
	child, err := n.ensureChildLocked(e)
	if err != nil {
		return false, err
	}

	window := n.fieldWindow(e.Field)
	cn := child.node()
	cn.mu.Lock()
	changed, err := cn.setModelLocked(window, pending)
	cn.mu.Unlock()
	if err != nil {
		return false, err
	}

	if changed {
		n.queuePropertyApplied(e.Property, pending)
	}
	return changed, nil
}

func (n *Node) queuePropertyApplied(prop string, pending *pendingNotifies) {
	pending.add(func() { n.notifyPropertyChanged(prop) })
	if h, ok := n.viewer.(ModelToViewHook); ok {
		pending.add(func() { h.OnModelToView(prop) })
	}
}

// Changed notifies the engine that a property was mutated from the view
// side. When the node is enabled and no raw->view pass is running, the
// value is encoded back into the model and propagated toward the root.
// Property subscribers are notified in either case.
func (n *Node) Changed(prop string) {
	if !n.attached {
		return
	}
	if n.suppress {
		// Mid raw->view pass on this goroutine: observers still hear
		// the notification, the upward path stays closed.
		n.notifyPropertyChanged(prop)
		return
	}

	var pending pendingNotifies
	n.mu.Lock()
	if n.enabled {
		n.viewToModelLocked(prop, &pending)
	}
	n.mu.Unlock()
	pending.flush()
	n.notifyPropertyChanged(prop)
}

// viewToModelLocked encodes one property into the raw model. Returns true
// on an effective write.
func (n *Node) viewToModelLocked(prop string, pending *pendingNotifies) bool {
	e, ok := n.reg.Entry(prop)
	if !ok {
		return false
	}

	wrote := false
	if e.Nested {
		child := n.children[e.Property]
		if child == nil {
			return false
		}
		cn := child.node()
		window := n.fieldWindow(e.Field)
		if !bytes.Equal(window, cn.model) {
			copy(window, cn.model)
			wrote = true
		}
	} else {
		lhs, absent := n.propertyValue(e)
		if absent {
			// An absent value cannot be written back to raw
			// memory; documented policy.
			return false
		}
		if len(e.Field.Steps) > 0 {
			wrote = n.writeIndirect(e, lhs)
		} else {
			window := n.fieldWindow(e.Field)
			rhs := e.Marshaler().Decode(window)
			if !reflect.DeepEqual(lhs, rhs) {
				e.Marshaler().Encode(lhs, window)
				wrote = true
			}
		}
	}

	if !wrote {
		return false
	}

	incViewToModel()
	if h, ok := n.viewer.(ViewToModelHook); ok {
		pending.add(func() { h.OnViewToModel(prop) })
	} else {
		pending.add(n.PropagateUp)
	}
	pending.add(n.notifyViewModelChanged)
	return true
}

// PropagateUp re-notifies the parent's property for this node, pushing the
// node's model up the tree. Called by the engine after an effective write
// unless the view overrides OnViewToModel; it runs after the node's own
// mutex is released, so the parent's critical section never nests inside
// this node's.
func (n *Node) PropagateUp() {
	if n.parent != nil && n.parentProp != "" {
		n.parent.Changed(n.parentProp)
	}
}

// ReadChanges pulls the node's current window from its parent and
// resynchronizes. Root nodes have no raw source to pull from and must be
// driven via SetModel.
func (n *Node) ReadChanges() error {
	if !n.attached {
		return errors.NotInitialized("node")
	}
	if !n.enabled {
		return nil
	}
	if n.parent == nil || n.parentProp == "" {
		return errors.UnboundRoot(n.reg.ViewType.Name())
	}

	e, ok := n.parent.reg.Entry(n.parentProp)
	if !ok {
		return errors.PropertyUnknown(errors.PhaseSync, n.parentProp)
	}

	n.parent.mu.Lock()
	window := n.parent.fieldWindow(e.Field)
	raw := make([]byte, len(window))
	copy(raw, window)
	n.parent.mu.Unlock()

	return n.SetModel(raw)
}

// Import copies every bound property's current value from another node of
// the same type: terminal bindings first, nested ones recursively. Used for
// cloning and templating; bypasses change notification and the marshaling
// round trip.
func (n *Node) Import(other Viewer) error {
	if !n.attached {
		return errors.NotInitialized("node")
	}
	on := other.node()
	if !on.attached {
		return errors.NotInitialized("import source node")
	}
	if reflect.TypeOf(other) != reflect.PointerTo(n.reg.ViewType) {
		return errors.New(errors.PhaseImport, errors.KindTypeMismatch).
			GoType(reflect.TypeOf(other).String()).
			Detail("import source must be a %s", n.reg.ViewType.Name()).
			Build()
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	return n.importLocked(on)
}

func (n *Node) importLocked(on *Node) error {
	for _, e := range n.reg.Terminal {
		n.self.Field(e.Index).Set(on.self.Field(e.Index))
	}
	for _, e := range n.reg.Nested {
		otherChild := on.children[e.Property]
		if otherChild == nil {
			continue
		}
		child, err := n.ensureChildLocked(e)
		if err != nil {
			return err
		}
		cn := child.node()
		oc := otherChild.node()
		cn.mu.Lock()
		err = cn.importLocked(oc)
		cn.mu.Unlock()
		if err != nil {
			return err
		}
	}
	return nil
}

// ensureChildLocked returns the cached child for a nested property,
// constructing and parenting it on first use. Repeated SetModel calls reuse
// the same child identity, so observers attached to it survive.
func (n *Node) ensureChildLocked(e *bind.Entry) (Viewer, error) {
	if child, ok := n.children[e.Property]; ok {
		return child, nil
	}

	built := e.NewChild()
	child, ok := built.(Viewer)
	if !ok {
		return nil, errors.New(errors.PhaseCompile, errors.KindTypeMismatch).
			Path(n.reg.ViewType.Name(), e.Property).
			GoType(reflect.TypeOf(built).String()).
			Detail("nested view type does not embed view.Node").
			Build()
	}

	cn := child.node()
	reg, err := bind.RegistryFor(child)
	if err != nil {
		return nil, err
	}
	if reg.Layout != e.Field.Nested {
		return nil, errors.New(errors.PhaseCompile, errors.KindTypeMismatch).
			Path(n.reg.ViewType.Name(), e.Property).
			GoType(reg.ViewType.Name()).
			Detail("child layout %s does not match field layout %s", reg.Layout.Name, e.Field.Nested.Name).
			Build()
	}

	cn.viewer = child
	cn.self = reflect.ValueOf(child).Elem()
	cn.reg = reg
	cn.model = make([]byte, reg.Layout.Size)
	cn.children = make(map[string]Viewer)
	cn.enabled = true
	cn.source = n.source
	cn.base = n.base + uint64(e.Field.Offset)
	cn.parent = n
	cn.parentProp = e.Property
	cn.attached = true

	n.children[e.Property] = child
	n.self.Field(e.Index).Set(reflect.ValueOf(child))
	return child, nil
}

// fieldWindow slices the model to exactly one field's bytes. Layout
// construction guarantees bounds.
func (n *Node) fieldWindow(f *bind.Field) []byte {
	return n.model[f.Offset : f.Offset+f.WireSize()]
}

// readFieldValue decodes one terminal field, following its indirection
// chain through the source when it has one. absent is true when the value
// cannot be produced this cycle; sibling fields are unaffected.
func (n *Node) readFieldValue(e *bind.Entry) (any, bool) {
	f := e.Field
	if len(f.Steps) == 0 {
		return e.Marshaler().Decode(n.fieldWindow(f)), false
	}

	if n.source == nil {
		return nil, true
	}
	pr, _ := n.source.(rawview.PointerReader)
	addr, err := resolve.Chain(pr, n.base+uint64(f.Offset), f.Steps)
	if err != nil {
		incResolutionFailure()
		if !resolve.IsAbsent(err) {
			bind.Logger().Warn("field resolution failed",
				zap.String("node", n.Path()),
				zap.String("property", e.Property),
				zap.Error(err))
		}
		return nil, true
	}

	window, err := n.source.ReadAt(addr, e.Marshaler().Width())
	if err != nil {
		incResolutionFailure()
		bind.Logger().Warn("field read failed",
			zap.String("node", n.Path()),
			zap.String("property", e.Property),
			zap.Error(err))
		return nil, true
	}
	return e.Marshaler().Decode(window), false
}

// writeIndirect encodes a property into the target through its indirection
// chain. Returns true on an effective write.
func (n *Node) writeIndirect(e *bind.Entry, lhs any) bool {
	if n.source == nil {
		return false
	}
	f := e.Field
	pr, _ := n.source.(rawview.PointerReader)
	addr, err := resolve.Chain(pr, n.base+uint64(f.Offset), f.Steps)
	if err != nil {
		incResolutionFailure()
		return false
	}

	width := e.Marshaler().Width()
	cur, err := n.source.ReadAt(addr, width)
	if err == nil && reflect.DeepEqual(e.Marshaler().Decode(cur), lhs) {
		return false
	}

	window := make([]byte, width)
	e.Marshaler().Encode(lhs, window)
	if err := n.source.WriteAt(addr, window); err != nil {
		bind.Logger().Warn("field write failed",
			zap.String("node", n.Path()),
			zap.String("property", e.Property),
			zap.Error(err))
		return false
	}
	return true
}

func (n *Node) propertyValue(e *bind.Entry) (any, bool) {
	fv := n.self.Field(e.Index)
	if e.Optional {
		if fv.IsNil() {
			return nil, true
		}
		return fv.Elem().Interface(), false
	}
	return fv.Interface(), false
}

func (n *Node) setPropertyValue(e *bind.Entry, val any, absent bool) {
	fv := n.self.Field(e.Index)
	switch {
	case absent:
		fv.Set(reflect.Zero(fv.Type()))
	case e.Optional:
		p := reflect.New(fv.Type().Elem())
		p.Elem().Set(reflect.ValueOf(val))
		fv.Set(p)
	default:
		fv.Set(reflect.ValueOf(val))
	}
}
