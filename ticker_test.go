package dim

import (
	"testing"
	"time"
)

func TestManualTicker(t *testing.T) {
	m := NewManualTicker()
	got := make(chan int, 3)
	go func() {
		n := 0
		for range m.C() {
			n++
			got <- n
			if n == 3 {
				return
			}
		}
	}()

	for i := 1; i <= 3; i++ {
		if !m.Tick() {
			t.Fatalf("Tick %d returned false", i)
		}
		if n := <-got; n != i {
			t.Fatalf("receiver saw %d ticks, want %d", n, i)
		}
	}

	if m.Stopped() {
		t.Error("Stopped() = true before Stop")
	}
	m.Stop()
	m.Stop()
	if !m.Stopped() {
		t.Error("Stopped() = false after Stop")
	}
	if m.Tick() {
		t.Error("Tick() after Stop = true")
	}
}

func TestManualTickerStopUnblocksTick(t *testing.T) {
	m := NewManualTicker()
	res := make(chan bool)
	go func() { res <- m.Tick() }()

	m.Stop()
	select {
	case ok := <-res:
		if ok {
			t.Error("Tick() delivered with no receiver")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Tick() still blocked after Stop")
	}
}

func TestTimeTicker(t *testing.T) {
	tk := NewTimeTicker(time.Millisecond)
	defer tk.Stop()
	select {
	case <-tk.C():
	case <-time.After(5 * time.Second):
		t.Fatal("time ticker never fired")
	}
}
