package trip

// Subscription is a handle to a registered observer. Unsubscribe removes the
// observer from the bus; it is safe to call more than once.
type Subscription struct {
	id    int
	state *State
	fn    func()
}

// Unsubscribe removes the observer from the notification bus.
func (sub *Subscription) Unsubscribe() {
	s := sub.state
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.observers {
		if o.id == sub.id {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Subscribe registers an observer invoked synchronously on every mutation,
// in registration order. Observers receive no payload: they are expected to
// re-pull whatever fields they need from the state.
func (s *State) Subscribe(fn func()) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	sub := &Subscription{id: s.nextSubID, state: s, fn: fn}
	s.observers = append(s.observers, sub)
	return sub
}

// Notify invokes every registered observer, in registration order. Each
// observer runs inside its own recovery boundary so one panicking observer
// cannot suppress the rest; recovered panics are logged.
//
// The lock is not held during fan-out, so observers may freely re-read state
// or even mutate it (each nested mutation triggers its own notification).
func (s *State) Notify() {
	s.mu.Lock()
	observers := append([]*Subscription{}, s.observers...)
	s.mu.Unlock()

	for _, o := range observers {
		s.invoke(o)
	}
}

func (s *State) invoke(sub *Subscription) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("trip observer panicked", "observer_id", sub.id, "panic", r)
		}
	}()
	sub.fn()
}
