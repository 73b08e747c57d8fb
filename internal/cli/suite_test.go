package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/depsketch/depsketch/pkg/suite"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunFixture(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "simple.txt", "gid:aid:ver:ext\n")
	writeFixture(t, dir, "templated.txt", "%s:aid:ver:ext\n\n%s:aid2:ver:ext\n")
	writeFixture(t, dir, "suite.toml", `
[[fixture]]
name = "simple"
file = "simple.txt"

[[fixture]]
name = "templated"
file = "templated.txt"
substitutions = ["gid"]
multiple = true
stanzas = 2
`)

	s, err := suite.Load(filepath.Join(dir, "suite.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, f := range s.Fixtures {
		if err := runFixture(s, f); err != nil {
			t.Errorf("fixture %q: %v", f.Name, err)
		}
	}
}

func TestRunFixtureStanzaMismatch(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "one.txt", "gid:aid:ver:ext\n")
	writeFixture(t, dir, "suite.toml", `
[[fixture]]
name = "one"
file = "one.txt"
multiple = true
stanzas = 3
`)

	s, err := suite.Load(filepath.Join(dir, "suite.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	f, _ := s.Fixture("one")
	if err := runFixture(s, f); err == nil {
		t.Error("expected stanza-count mismatch error")
	}
}

func TestRunFixtureParseFailure(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "broken.txt", "gid:aid\n")
	writeFixture(t, dir, "suite.toml", `
[[fixture]]
name = "broken"
file = "broken.txt"
`)

	s, err := suite.Load(filepath.Join(dir, "suite.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	f, _ := s.Fixture("broken")
	if err := runFixture(s, f); err == nil {
		t.Error("expected parse error")
	}
}
