package registry

import (
	"testing"

	"github.com/vovakirdan/cuboid/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string { return g.id }
func (g stubGame) Title() string { return "Stub " + g.id }
func (g stubGame) Reset(core.RuntimeConfig) {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen) {}
func (g stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	Register("zz_stub", func() Game { return stubGame{"zz_stub"} })
	Register("aa_stub", func() Game { return stubGame{"aa_stub"} })

	if !Exists("zz_stub") || Exists("missing") {
		t.Fatal("Exists() disagrees with registrations")
	}

	g, err := Create("aa_stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "aa_stub" {
		t.Errorf("Create() returned %q", g.ID())
	}
	if _, err := Create("missing"); err == nil {
		t.Error("Create() of an unknown ID should fail")
	}

	list := List()
	var ids []string
	for _, info := range list {
		ids = append(ids, info.ID)
	}
	first, last := -1, -1
	for i, id := range ids {
		switch id {
		case "aa_stub":
			first = i
		case "zz_stub":
			last = i
		}
	}
	if first < 0 || last < 0 || first > last {
		t.Errorf("List() = %v, want both stubs ordered by ID", ids)
	}
	if list[first].Title != "Stub aa_stub" {
		t.Errorf("title = %q", list[first].Title)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup_stub", func() Game { return stubGame{"dup_stub"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() should panic")
		}
	}()
	Register("dup_stub", func() Game { return stubGame{"dup_stub"} })
}
