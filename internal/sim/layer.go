package sim

import (
	"github.com/san-kum/driftfield/internal/field"
)

type Observer interface {
	OnFrame(st field.Stats)
}

type ObserverFunc func(st field.Stats)

func (fn ObserverFunc) OnFrame(st field.Stats) { fn(st) }

// Layer is one live particle field: the simulation plus everything the host
// feeds it between frames.
type Layer struct {
	field     *field.Field
	surface   field.Surface
	pointer   field.Vec2
	bounds    field.Bounds
	closed    bool
	observers []observerEntry
	nextID    int
}

type observerEntry struct {
	id int
	o  Observer
}

// NewLayer attaches f to a surface sized to b. The pointer starts offscreen so
// nothing is disturbed before the first move event. s may be nil, in which
// case the layer simulates without drawing.
func NewLayer(f *field.Field, b field.Bounds, s field.Surface) *Layer {
	l := &Layer{
		field:   f,
		surface: s,
		pointer: field.Offscreen,
		bounds:  b,
	}
	if r, ok := s.(field.Resizer); ok {
		r.Resize(int(b.W), int(b.H))
	}
	return l
}

// AddObserver registers o for every later frame. The returned func detaches
// it again.
func (l *Layer) AddObserver(o Observer) (remove func()) {
	l.nextID++
	id := l.nextID
	l.observers = append(l.observers, observerEntry{id: id, o: o})
	return func() {
		for i, e := range l.observers {
			if e.id == id {
				l.observers = append(l.observers[:i:i], l.observers[i+1:]...)
				return
			}
		}
	}
}

// MovePointer records the latest pointer position. The value is read by the
// next Frame; earlier moves in between are overwritten.
func (l *Layer) MovePointer(x, y float64) {
	l.pointer = field.Vec2{X: x, Y: y}
}

// Resize changes the viewport. Particles keep their coordinates and are
// folded back in by the next frame's wrap.
func (l *Layer) Resize(w, h int) {
	l.bounds = field.NewBounds(w, h)
	if r, ok := l.surface.(field.Resizer); ok {
		r.Resize(w, h)
	}
}

// Frame runs one tick and draws it. It does nothing after Close.
func (l *Layer) Frame() error {
	if l.closed {
		return ErrClosed
	}
	l.field.Step(l.pointer, l.bounds)
	l.field.Draw(l.surface)

	if len(l.observers) > 0 {
		st := l.field.Stats(l.pointer)
		for _, e := range l.observers {
			e.o.OnFrame(st)
		}
	}
	return nil
}

// Redraw repaints the current state without advancing it.
func (l *Layer) Redraw() error {
	if l.closed {
		return ErrClosed
	}
	l.field.Draw(l.surface)
	return nil
}

// Reset respawns every particle inside the current viewport.
func (l *Layer) Reset(seed int64) error {
	if l.closed {
		return ErrClosed
	}
	l.field.Reset(seed, l.bounds)
	return nil
}

// Close tears the layer down. Later frames return ErrClosed.
func (l *Layer) Close() {
	l.closed = true
	l.observers = nil
}

func (l *Layer) Closed() bool           { return l.closed }
func (l *Layer) Field() *field.Field    { return l.field }
func (l *Layer) Pointer() field.Vec2    { return l.pointer }
func (l *Layer) Bounds() field.Bounds   { return l.bounds }
func (l *Layer) Surface() field.Surface { return l.surface }
func (l *Layer) Stats() field.Stats     { return l.field.Stats(l.pointer) }
