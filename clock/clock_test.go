package clock_test

import (
	"math"
	"testing"
	"time"

	"go-eighties/clock"
)

func TestManual(t *testing.T) {
	var c clock.Manual
	if c.Now() != 0 {
		t.Fatalf("zero clock at %d", c.Now())
	}
	c.Set(100)
	if got := c.Advance(25); got != 125 || c.Now() != 125 {
		t.Fatalf("advance: got %d now %d", got, c.Now())
	}
	c.Set(math.MaxUint32)
	if got := c.Advance(2); got != 1 {
		t.Fatalf("wrap: got %d", got)
	}
}

func TestSystemMovesForward(t *testing.T) {
	c := clock.NewSystem()
	a := c.Now()
	time.Sleep(5 * time.Millisecond)
	if b := c.Now(); b-a < 5 {
		t.Fatalf("clock moved %dms", b-a)
	}
}
