package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Faultbox/showroom/internal/engine/input"
	"github.com/Faultbox/showroom/internal/engine/ui2d"
)

type fakePage struct {
	name     string
	enterErr error
	log      *[]string
	updates  int
}

func (f *fakePage) Enter(ctx context.Context, s *Surface) error {
	*f.log = append(*f.log, "enter "+f.name)
	return f.enterErr
}

func (f *fakePage) Exit()                       { *f.log = append(*f.log, "exit "+f.name) }
func (f *fakePage) HandleEvent(ev input.Event)  {}
func (f *fakePage) Update(dt time.Duration)     { f.updates++ }
func (f *fakePage) Resize(width, height int32)  {}
func (f *fakePage) Render(s *Surface)           {}
func (f *fakePage) DrawUI(ui *ui2d.Context)     {}

func TestManagerChange(t *testing.T) {
	var log []string
	a := &fakePage{name: "a", log: &log}
	b := &fakePage{name: "b", log: &log}
	m := NewManager()
	ctx := context.Background()
	s := &Surface{}

	m.Change(a)
	if m.Current() != nil {
		t.Fatal("change applied before update")
	}
	if err := m.Update(ctx, s, time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if m.Current() != a || a.updates != 1 {
		t.Fatalf("current = %v, updates = %d", m.Current(), a.updates)
	}

	m.Change(b)
	if err := m.Update(ctx, s, time.Millisecond); err != nil {
		t.Fatal(err)
	}
	m.Close()

	want := []string{"enter a", "exit a", "enter b", "exit b"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log = %v, want %v", log, want)
		}
	}
	if a.updates != 1 || b.updates != 1 {
		t.Errorf("updates a=%d b=%d, want 1 each", a.updates, b.updates)
	}
}

func TestManagerEnterFailure(t *testing.T) {
	var log []string
	boom := errors.New("no gl")
	bad := &fakePage{name: "bad", enterErr: boom, log: &log}
	m := NewManager()

	m.Change(bad)
	err := m.Update(context.Background(), &Surface{}, 0)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if m.Current() != nil {
		t.Error("failed page became current")
	}
	if bad.updates != 0 {
		t.Error("failed page was updated")
	}

	// The failure is reported once; later frames run without a page.
	if err := m.Update(context.Background(), &Surface{}, 0); err != nil {
		t.Errorf("second update err = %v", err)
	}
	m.Close()
	if len(log) != 1 {
		t.Errorf("log = %v, want only the enter", log)
	}
}
