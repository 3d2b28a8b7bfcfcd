package integration

import (
	"bufio"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stigoleg/autoclicker/internal/clicker"
)

// countingClicker counts clicks instead of moving the real pointer.
type countingClicker struct {
	clicks atomic.Int64
	closed atomic.Bool
}

func (c *countingClicker) Click(clicker.Button) error {
	if c.closed.Load() {
		panic("click after close")
	}
	c.clicks.Add(1)
	return nil
}

func (c *countingClicker) Close() error {
	c.closed.Store(true)
	return nil
}

// fileClicker appends one line per click so a parent process can observe a
// helper process clicking.
type fileClicker struct {
	mu sync.Mutex
	f  *os.File
}

func (c *fileClicker) Click(b clicker.Button) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.f == nil {
		panic("click after close")
	}
	_, err := c.f.WriteString("click " + b.String() + "\n")
	return err
}

func (c *fileClicker) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.f == nil {
		return nil
	}
	err := c.f.Close()
	c.f = nil
	return err
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	s := bufio.NewScanner(f)
	for s.Scan() {
		if line := strings.TrimSpace(s.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func countClicks(lines []string) int {
	n := 0
	for _, l := range lines {
		if strings.HasPrefix(l, "click ") {
			n++
		}
	}
	return n
}
