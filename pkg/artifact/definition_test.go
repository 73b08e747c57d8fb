package artifact

import (
	"testing"

	"github.com/depsketch/depsketch/pkg/errors"
)

func TestParseDefinition(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Definition
	}{
		{
			name:  "FourFields",
			input: "gid:aid:1:jar",
			want:  Definition{GroupID: "gid", ArtifactID: "aid", Version: "1", Extension: "jar"},
		},
		{
			name:  "WithScope",
			input: "gid:aid:1:jar:test",
			want:  Definition{GroupID: "gid", ArtifactID: "aid", Version: "1", Extension: "jar", Scope: "test"},
		},
		{
			name:  "WithOptional",
			input: "gid:aid:1:jar:test:optional",
			want:  Definition{GroupID: "gid", ArtifactID: "aid", Version: "1", Extension: "jar", Scope: "test", Optional: true},
		},
		{
			name:  "SixthFieldNotOptional",
			input: "gid:aid:1:jar:test:whatever",
			want:  Definition{GroupID: "gid", ArtifactID: "aid", Version: "1", Extension: "jar", Scope: "test"},
		},
		{
			name:  "EmptyScopeSlot",
			input: "gid:aid:1:jar::optional",
			want:  Definition{GroupID: "gid", ArtifactID: "aid", Version: "1", Extension: "jar", Optional: true},
		},
		{
			name:  "Properties",
			input: "gid:aid:ver:ext;test=foo;test2=fizzle",
			want: Definition{
				GroupID: "gid", ArtifactID: "aid", Version: "ver", Extension: "ext",
				Properties: map[string]string{"test": "foo", "test2": "fizzle"},
			},
		},
		{
			name:  "PropertyValueWithColon",
			input: "gid:aid:ver:ext;url=file:///tmp/repo",
			want: Definition{
				GroupID: "gid", ArtifactID: "aid", Version: "ver", Extension: "ext",
				Properties: map[string]string{"url": "file:///tmp/repo"},
			},
		},
		{
			name:  "PropertyWithoutValue",
			input: "gid:aid:ver:ext;flag",
			want: Definition{
				GroupID: "gid", ArtifactID: "aid", Version: "ver", Extension: "ext",
				Properties: map[string]string{"flag": ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDefinition(tt.input)
			if err != nil {
				t.Fatalf("ParseDefinition(%q): %v", tt.input, err)
			}

			if got.GroupID != tt.want.GroupID || got.ArtifactID != tt.want.ArtifactID ||
				got.Version != tt.want.Version || got.Extension != tt.want.Extension ||
				got.Scope != tt.want.Scope || got.Optional != tt.want.Optional {
				t.Errorf("ParseDefinition(%q) = %+v, want %+v", tt.input, got, tt.want)
			}

			if len(got.Properties) != len(tt.want.Properties) {
				t.Fatalf("properties = %v, want %v", got.Properties, tt.want.Properties)
			}
			for k, v := range tt.want.Properties {
				if got.Properties[k] != v {
					t.Errorf("property %q = %q, want %q", k, got.Properties[k], v)
				}
			}
		})
	}
}

func TestParseDefinitionTooFewFields(t *testing.T) {
	for _, input := range []string{"", "gid", "gid:aid", "gid:aid:ver", "gid:aid:ver;k=v"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDefinition(input)
			if err == nil {
				t.Fatalf("ParseDefinition(%q): expected error", input)
			}
			if !errors.Is(err, errors.ErrCodeFormat) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeFormat)
			}
		})
	}
}

func TestArtifactCoordinate(t *testing.T) {
	a := Artifact{GroupID: "gid", ArtifactID: "aid", Version: "1", Extension: "jar"}
	if got := a.Coordinate(); got != "gid:aid:1:jar" {
		t.Errorf("Coordinate() = %q, want %q", got, "gid:aid:1:jar")
	}
}
