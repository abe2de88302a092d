package registry

import (
	"errors"
	"testing"
)

func TestRegisterAndGet(t *testing.T) {
	Register(Sketch{ID: "zz-test", Source: "function draw() end"})
	defer unregister("zz-test")

	s, err := Get("zz-test")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if s.Title != "zz-test" {
		t.Errorf("Title = %q, expected the ID as fallback", s.Title)
	}
	if !Exists("zz-test") {
		t.Error("Exists() = false for a registered sketch")
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("does-not-exist"); !errors.Is(err, ErrUnknownSketch) {
		t.Errorf("Get() error = %v, expected ErrUnknownSketch", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(Sketch{ID: "zz-dup"})
	defer unregister("zz-dup")

	defer func() {
		if recover() == nil {
			t.Error("registering a duplicate ID should panic")
		}
	}()
	Register(Sketch{ID: "zz-dup"})
}

func TestListSorted(t *testing.T) {
	Register(Sketch{ID: "zz-b"})
	Register(Sketch{ID: "zz-a"})
	defer unregister("zz-a")
	defer unregister("zz-b")

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}
