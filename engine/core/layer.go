package core

// Layer is one slice of the application: the run loop dispatches updates and
// rendering bottom-to-top, events top-to-bottom. OnEvent returns true to
// consume the event; layers below it never see it.
type Layer interface {
	OnAttach(e *Engine)
	OnDetach(e *Engine)
	OnUpdate(e *Engine, dt float64)
	OnRender(e *Engine, alpha float64)
	OnEvent(e *Engine, ev Event) bool
}

// LayerStack holds layers in draw order: index 0 renders first (bottom).
type LayerStack struct{ layers []Layer }

func (ls *LayerStack) Push(l Layer) { ls.layers = append(ls.layers, l) }

// Pop removes and returns the topmost layer. ok is false on an empty stack.
func (ls *LayerStack) Pop() (Layer, bool) {
	n := len(ls.layers)
	if n == 0 {
		return nil, false
	}
	top := ls.layers[n-1]
	ls.layers = ls.layers[:n-1]
	return top, true
}

// ForEach visits bottom-to-top (update/render order).
func (ls *LayerStack) ForEach(f func(Layer)) {
	for _, l := range ls.layers {
		f(l)
	}
}

// ForEachReverse visits top-to-bottom, stopping when f returns true
// (event order: the topmost layer gets first claim).
func (ls *LayerStack) ForEachReverse(f func(Layer) bool) {
	for i := len(ls.layers) - 1; i >= 0; i-- {
		if f(ls.layers[i]) {
			return
		}
	}
}
