package dom

// Event is delivered to handlers registered on an element.
type Event struct {
	Type   string
	Target *Element
	Detail any
}

// Handler receives dispatched events.
type Handler func(Event)

// Unlisten releases a subscription. Calling it more than once is safe.
type Unlisten func()

type listener struct {
	fn      Handler
	once    bool
	removed bool
}

// Listen subscribes fn to events of the given type and returns the handle releasing it.
func (e *Element) Listen(typ string, fn Handler) Unlisten {
	return e.listen(typ, fn, false)
}

// ListenOnce subscribes fn to the next event of the given type only.
func (e *Element) ListenOnce(typ string, fn Handler) Unlisten {
	return e.listen(typ, fn, true)
}

func (e *Element) listen(typ string, fn Handler, once bool) Unlisten {
	l := &listener{fn: fn, once: once}
	e.listeners[typ] = append(e.listeners[typ], l)
	return func() {
		e.unlisten(typ, l)
	}
}

func (e *Element) unlisten(typ string, l *listener) {
	if l.removed {
		return
	}
	l.removed = true

	remaining := e.listeners[typ][:0]
	for _, other := range e.listeners[typ] {
		if other != l {
			remaining = append(remaining, other)
		}
	}
	if len(remaining) == 0 {
		delete(e.listeners, typ)
		return
	}
	e.listeners[typ] = remaining
}

// Dispatch delivers an event to every handler subscribed on e at the time of the call.
// Handlers released by an earlier handler of the same dispatch are skipped.
func (e *Element) Dispatch(typ string, detail any) {
	snapshot := append([]*listener(nil), e.listeners[typ]...)
	ev := Event{Type: typ, Target: e, Detail: detail}

	for _, l := range snapshot {
		if l.removed {
			continue
		}
		if l.once {
			e.unlisten(typ, l)
		}
		l.fn(ev)
	}
}

// ListenerCount returns the number of live subscriptions for an event type.
func (e *Element) ListenerCount(typ string) int {
	return len(e.listeners[typ])
}
