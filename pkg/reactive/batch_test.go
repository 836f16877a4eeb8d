package reactive

import "testing"

func TestBatchNotifiesOnce(t *testing.T) {
	a := NewSignal(0)
	b := NewSignal(0)
	runs := 0
	e := CreateEffect(func() Cleanup {
		_ = a.Get() + b.Get()
		runs++
		return nil
	})
	defer e.Dispose()

	Batch(func() {
		a.Set(1)
		b.Set(2)
		Batch(func() {
			a.Set(3)
		})
		if runs != 1 {
			t.Errorf("effect ran inside batch: runs = %d", runs)
		}
		if !InBatch() {
			t.Error("InBatch() = false inside Batch")
		}
	})

	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
	if InBatch() {
		t.Error("InBatch() = true after Batch")
	}
}

func TestUntracked(t *testing.T) {
	s := NewSignal(0)
	runs := 0
	e := CreateEffect(func() Cleanup {
		runs++
		Untracked(func() { _ = s.Get() })
		return nil
	})
	defer e.Dispose()

	s.Set(1)
	if runs != 1 {
		t.Errorf("untracked read subscribed the effect: runs = %d", runs)
	}
}
