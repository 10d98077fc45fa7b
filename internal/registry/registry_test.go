package registry

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/michaelssim/soundbuddy/internal/pulse"
)

func TestBuiltinsRegistered(t *testing.T) {
	for _, name := range []string{"tone", "bell", "silent"} {
		if !Exists(name) {
			t.Errorf("Backend %q not registered", name)
		}
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].Name > list[i].Name {
			t.Errorf("List() not sorted: %v", list)
		}
	}
}

func TestCreateBell(t *testing.T) {
	var buf bytes.Buffer
	e, err := Create("bell", Env{Tone: pulse.DefaultTone(), Out: &buf})
	if err != nil {
		t.Fatalf("Create(bell) failed: %v", err)
	}
	if err := e.Emit(context.Background()); err != nil {
		t.Fatalf("Emit() failed: %v", err)
	}
	if buf.String() != "\a" {
		t.Errorf("Bell wrote %q", buf.String())
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("theremin", Env{})
	if err == nil || !strings.Contains(err.Error(), "theremin") {
		t.Errorf("Create(theremin) = %v, expected unknown emitter error", err)
	}
}

func TestCreateWrapsBackendError(t *testing.T) {
	sentinel := errors.New("device busy")
	Register("test-broken", "always fails", func(Env) (pulse.Emitter, error) {
		return nil, sentinel
	})

	if _, err := Create("test-broken", Env{}); !errors.Is(err, sentinel) {
		t.Errorf("Create() = %v, expected wrapped sentinel", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic on duplicate registration")
		}
	}()
	Register("silent", "again", func(Env) (pulse.Emitter, error) { return pulse.Silent{}, nil })
}
