package broadcast

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"

	"go.uber.org/atomic"
)

// reentrantMutex is a mutex the holding goroutine may re-acquire. The channel
// uses it as its delivery lock so a handler running inside a broadcast can
// itself broadcast or listen without deadlocking.
type reentrantMutex struct {
	mu    sync.Mutex
	owner atomic.Int64
	depth int
}

func (m *reentrantMutex) Lock() {
	id := goroutineID()
	if m.owner.Load() == id {
		m.depth++
		return
	}
	m.mu.Lock()
	m.owner.Store(id)
	m.depth = 1
}

func (m *reentrantMutex) Unlock() {
	m.depth--
	if m.depth == 0 {
		m.owner.Store(0)
		m.mu.Unlock()
	}
}

var stackPrefix = []byte("goroutine ")

// goroutineID parses the current goroutine's id from its stack header.
// The runtime offers no public accessor; the header format is stable.
func goroutineID() int64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	frame := bytes.TrimPrefix(buf[:n], stackPrefix)
	if i := bytes.IndexByte(frame, ' '); i > 0 {
		frame = frame[:i]
	}
	id, err := strconv.ParseInt(string(frame), 10, 64)
	if err != nil {
		return -1
	}
	return id
}
