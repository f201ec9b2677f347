package glfw

import (
	"sync"

	"github.com/gogpu/gpuboot/window"
)

// queue buffers the messages GLFW callbacks produce until the loop asks
// for them.
type queue struct {
	mu   sync.Mutex
	msgs []window.Message
}

func (q *queue) push(m window.Message) {
	q.mu.Lock()
	q.msgs = append(q.msgs, m)
	q.mu.Unlock()
}

func (q *queue) pop() (window.Message, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.msgs) == 0 {
		return window.Message{}, false
	}
	m := q.msgs[0]
	q.msgs = q.msgs[1:]
	return m, true
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.msgs)
}

// next returns a queued message, pumping the window system with pump
// when the queue is empty.
func (q *queue) next(pump func()) (window.Message, bool) {
	if m, ok := q.pop(); ok {
		return m, true
	}
	pump()
	return q.pop()
}

// keyMessage converts a key event. Only presses are delivered.
func keyMessage(key int, pressed bool) (window.Message, bool) {
	if !pressed {
		return window.Message{}, false
	}
	return window.Message{Kind: window.KeyDown, Key: key}, true
}

func sizeMessage(width, height int) window.Message {
	return window.Message{Kind: window.SizeChanged, Width: width, Height: height}
}
