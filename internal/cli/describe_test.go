package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/depsketch/depsketch/pkg/descriptor"
)

func TestFormatDescriptionText(t *testing.T) {
	desc, err := descriptor.New(nil).ParseLiteral(`[dependencies]
gid:aid:ver:ext:runtime
-banned:aid
gid:aid2:ver:ext
`)
	if err != nil {
		t.Fatalf("ParseLiteral: %v", err)
	}

	out, err := formatDescription("text", desc)
	if err != nil {
		t.Fatalf("formatDescription: %v", err)
	}

	s := string(out)
	if !strings.Contains(s, "[dependencies]") {
		t.Errorf("missing section header:\n%s", s)
	}
	if !strings.Contains(s, "gid:aid:ver:ext") {
		t.Errorf("missing coordinate:\n%s", s)
	}
	if !strings.Contains(s, "banned:aid") {
		t.Errorf("missing exclusion:\n%s", s)
	}
}

func TestFormatDescriptionJSON(t *testing.T) {
	desc, err := descriptor.New(nil).ParseLiteral("[repositories]\nid:type:file:///repo\n")
	if err != nil {
		t.Fatalf("ParseLiteral: %v", err)
	}

	out, err := formatDescription("json", desc)
	if err != nil {
		t.Fatalf("formatDescription: %v", err)
	}

	var decoded descriptor.Description
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Repositories) != 1 || decoded.Repositories[0].URL != "file:///repo" {
		t.Errorf("repositories = %+v", decoded.Repositories)
	}
}

func TestFormatDescriptionUnknown(t *testing.T) {
	if _, err := formatDescription("bogus", &descriptor.Description{}); err == nil {
		t.Error("expected error for unknown format")
	}
}
