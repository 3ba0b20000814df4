package hittest

// Message is a window message as delivered to a window procedure.
type Message struct {
	HWnd   uintptr
	Msg    uint32
	WParam uintptr
	LParam uintptr
}

// Link either handles a message, returning its result and true, or declines
// and lets the chain forward the message unchanged.
type Link interface {
	Handle(m Message) (uintptr, bool)
}

type LinkFunc func(m Message) (uintptr, bool)

func (f LinkFunc) Handle(m Message) (uintptr, bool) { return f(m) }

// Chain offers m to each link in order and falls back to Next, normally the
// original window procedure.
type Chain struct {
	Links []Link
	Next  func(m Message) uintptr
}

func (c *Chain) Dispatch(m Message) uintptr {
	for _, l := range c.Links {
		if r, ok := l.Handle(m); ok {
			return r
		}
	}
	if c.Next == nil {
		return 0
	}
	return c.Next(m)
}
