package runner

import (
	"bufio"
	"io"
	"sync"
)

type inputResult struct {
	text string
	err  error
}

// pump reads lines on its own goroutine so the console can also wait on ctx.
// The channel is closed at EOF. Closing stop abandons any pending line.
func pump(r io.Reader, stop <-chan struct{}) <-chan inputResult {
	ch := make(chan inputResult)
	send := func(res inputResult) bool {
		select {
		case ch <- res:
			return true
		case <-stop:
			return false
		}
	}
	go func() {
		defer close(ch)
		reader := bufio.NewReader(r)
		for {
			text, err := reader.ReadString('\n')
			if text != "" && !send(inputResult{text: text}) {
				return
			}
			if err == io.EOF {
				return
			}
			if err != nil {
				send(inputResult{err: err})
				return
			}
		}
	}()
	return ch
}

// lockedWriter serialises console output from the input loop and from
// session observers, which run on delivery goroutines.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
