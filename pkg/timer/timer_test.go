package timer

import (
	"testing"
	"time"
)

func TestCachedTimer_Advances(t *testing.T) {
	ct := NewCachedTimer(time.Millisecond)
	defer ct.Stop()

	first := ct.Now()
	deadline := time.Now().Add(time.Second)
	for !ct.Now().After(first) {
		if time.Now().After(deadline) {
			t.Fatal("cached time never advanced")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestCachedTimer_StopTwice(t *testing.T) {
	ct := NewCachedTimer(time.Millisecond)
	ct.Stop()
	ct.Stop()

	frozen := ct.Now()
	time.Sleep(5 * time.Millisecond)
	if !ct.Now().Equal(frozen) {
		t.Error("time advanced after Stop")
	}
}

func TestSystemTimer(t *testing.T) {
	before := time.Now()
	got := SystemTimer{}.Now()
	if got.Before(before) {
		t.Errorf("SystemTimer.Now() = %v, before %v", got, before)
	}
}
