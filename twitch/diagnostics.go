package twitch

import "sync"

// DiagnosticListener receives one diagnostic line per call.  Lines record
// the wire traffic of the session: "> " prefixes received lines, "< "
// prefixes transmitted ones.  Lines carrying an OAuth token are redacted
// before publication.
type DiagnosticListener func(line string)

type diagnosticsSender struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]DiagnosticListener
}

// subscribe registers a listener and returns a function that cancels the
// subscription.
func (d *diagnosticsSender) subscribe(l DiagnosticListener) (unsubscribe func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.subs == nil {
		d.subs = map[int]DiagnosticListener{}
	}
	id := d.nextID
	d.nextID++
	d.subs[id] = l
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.subs, id)
	}
}

func (d *diagnosticsSender) send(line string) {
	d.mu.Lock()
	listeners := make([]DiagnosticListener, 0, len(d.subs))
	for _, l := range d.subs {
		listeners = append(listeners, l)
	}
	d.mu.Unlock()
	for _, l := range listeners {
		l(line)
	}
}
