package descriptor

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/depsketch/depsketch/pkg/artifact"
	"github.com/depsketch/depsketch/pkg/errors"
	"github.com/depsketch/depsketch/pkg/resource"
)

// defaultScope is applied to dependencies whose coordinate omits the
// scope field. The tree grammar in pkg/sketch leaves such scopes empty;
// the section grammar here does not.
const defaultScope = "compile"

// section identifies one of the recognized description sections. The set
// is closed: dispatch is by enum value, never by raw header string.
type section int

const (
	sectionNone section = iota
	sectionRelocations
	sectionDependencies
	sectionManagedDependencies
	sectionRepositories
)

var sectionsByName = map[string]section{
	"relocations":         sectionRelocations,
	"dependencies":        sectionDependencies,
	"manageddependencies": sectionManagedDependencies,
	"repositories":        sectionRepositories,
}

// Reader parses artifact descriptions from named resources, URLs, or
// literal strings.
//
// The loader configuration is immutable for the reader's lifetime, so a
// shared Reader is safe for concurrent use. Every parse call builds a
// fresh Description; nothing is shared across calls.
type Reader struct {
	loader *resource.Loader
}

// New creates a reader that resolves named resources through loader.
// A nil loader reads from the OS filesystem with no name prefix.
func New(loader *resource.Loader) *Reader {
	if loader == nil {
		loader = resource.NewLoader("")
	}
	return &Reader{loader: loader}
}

// Parse loads the named resource and parses it as an artifact description.
func (r *Reader) Parse(name string) (*Description, error) {
	rc, err := r.loader.Open(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return parse(rc)
}

// ParseURL fetches the resource at url and parses it.
func (r *Reader) ParseURL(ctx context.Context, url string) (*Description, error) {
	rc, err := r.loader.OpenURL(ctx, url)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return parse(rc)
}

// ParseLiteral parses the given description string.
func (r *Reader) ParseLiteral(description string) (*Description, error) {
	rc := r.loader.Literal(description)
	defer rc.Close()
	return parse(rc)
}

// parse splits the input into sections, then maps each section's lines
// into its record type.
func parse(r io.Reader) (*Description, error) {
	current := sectionNone
	sections := make(map[section][]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := cutComment(scanner.Text())
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, errors.New(errors.ErrCodeFormat, "malformed section header %q", line)
			}
			name := strings.ToLower(line[1 : len(line)-1])
			s, ok := sectionsByName[name]
			if !ok {
				return nil, errors.New(errors.ErrCodeFormat, "unknown section %q", line)
			}
			current = s
			sections[s] = []string{}
			continue
		}

		if current == sectionNone {
			return nil, errors.New(errors.ErrCodeFormat, "line %q appears before any section header", line)
		}
		sections[current] = append(sections[current], line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read description")
	}

	relocs, err := relocations(sections[sectionRelocations])
	if err != nil {
		return nil, err
	}
	deps, err := dependencies(sections[sectionDependencies])
	if err != nil {
		return nil, err
	}
	managed, err := dependencies(sections[sectionManagedDependencies])
	if err != nil {
		return nil, err
	}
	repos, err := repositories(sections[sectionRepositories])
	if err != nil {
		return nil, err
	}

	return &Description{
		Relocations:         relocs,
		Dependencies:        deps,
		ManagedDependencies: managed,
		Repositories:        repos,
	}, nil
}

func relocations(lines []string) ([]artifact.Artifact, error) {
	if lines == nil {
		return nil, nil
	}

	out := make([]artifact.Artifact, 0, len(lines))
	for _, line := range lines {
		def, err := artifact.ParseDefinition(line)
		if err != nil {
			return nil, err
		}
		out = append(out, def.Artifact())
	}
	return out, nil
}

// dependencies maps a dependency section. Exclusion lines accumulate and
// attach to the coordinate line that follows them, never to one that
// precedes them; a coordinate line commits the previously pending
// dependency. Exclusions trailing the last coordinate line still attach
// to that dependency, because the final commit happens once at end of
// section, not per line.
func dependencies(lines []string) ([]artifact.Dependency, error) {
	if lines == nil {
		return nil, nil
	}

	out := make([]artifact.Dependency, 0, len(lines))

	var (
		pending    *artifact.Dependency
		exclusions []artifact.Exclusion
	)

	for _, line := range lines {
		if rest, ok := strings.CutPrefix(line, "-"); ok {
			groupID, artifactID, ok := strings.Cut(rest, ":")
			if !ok {
				return nil, errors.New(errors.ErrCodeFormat, "bad exclusion %q: need groupId:artifactId", line)
			}
			exclusions = append(exclusions, artifact.Exclusion{GroupID: groupID, ArtifactID: artifactID})
			continue
		}

		if pending != nil {
			out = append(out, *pending)
		}

		def, err := artifact.ParseDefinition(line)
		if err != nil {
			return nil, err
		}

		scope := def.Scope
		if scope == "" {
			scope = defaultScope
		}
		pending = &artifact.Dependency{
			Artifact:   def.Artifact(),
			Scope:      scope,
			Optional:   def.Optional,
			Exclusions: exclusions,
		}
		exclusions = nil
	}

	if pending != nil {
		pending.Exclusions = append(pending.Exclusions, exclusions...)
		out = append(out, *pending)
	} else if len(exclusions) > 0 {
		return nil, errors.New(errors.ErrCodeFormat, "exclusions with no dependency to attach to")
	}

	return out, nil
}

func repositories(lines []string) ([]Repository, error) {
	if lines == nil {
		return nil, nil
	}

	out := make([]Repository, 0, len(lines))
	for _, line := range lines {
		parts := strings.SplitN(line, ":", 3)
		if len(parts) < 3 {
			return nil, errors.New(errors.ErrCodeFormat, "bad repository %q: need id:type:url", line)
		}
		out = append(out, Repository{ID: parts[0], Type: parts[1], URL: parts[2]})
	}
	return out, nil
}

func cutComment(line string) string {
	before, _, _ := strings.Cut(line, "#")
	return before
}
