package artifact

import (
	"strings"

	"github.com/depsketch/depsketch/pkg/errors"
)

// Definition is the parsed form of one coordinate expression.
//
// Scope interpretation is positional, not content-sniffed: field five is
// always the scope slot and field six is always the optional slot. A scope
// default (e.g. "compile" in dependency sections) is applied by the caller,
// not here.
type Definition struct {
	GroupID    string
	ArtifactID string
	Version    string
	Extension  string
	Scope      string
	Optional   bool
	Properties map[string]string
}

// Artifact returns the artifact identified by the definition, carrying the
// property map along.
func (d Definition) Artifact() Artifact {
	return Artifact{
		GroupID:    d.GroupID,
		ArtifactID: d.ArtifactID,
		Version:    d.Version,
		Extension:  d.Extension,
		Properties: d.Properties,
	}
}

// ParseDefinition parses a single trimmed, comment-stripped coordinate line:
//
//	gid:aid:ver:ext[:scope[:optional]][;key=value;key2=value2]
//
// The first four fields are mandatory; fewer than four yields a
// FORMAT_ERROR. The property list is split off at the first semicolon
// before any coordinate splitting, so property values may contain colons.
// A property segment without '=' maps the whole segment to the empty
// string.
func ParseDefinition(line string) (Definition, error) {
	var def Definition

	coords, props, hasProps := strings.Cut(line, ";")
	if hasProps {
		def.Properties = parseProperties(props)
	}

	fields := strings.Split(coords, ":")
	if len(fields) < 4 {
		return Definition{}, errors.New(errors.ErrCodeFormat,
			"bad coordinate %q: need groupId:artifactId:version:extension, got %d fields", coords, len(fields))
	}

	def.GroupID = fields[0]
	def.ArtifactID = fields[1]
	def.Version = fields[2]
	def.Extension = fields[3]
	if len(fields) > 4 {
		def.Scope = fields[4]
	}
	if len(fields) > 5 {
		def.Optional = fields[5] == "optional"
	}

	return def, nil
}

func parseProperties(s string) map[string]string {
	props := make(map[string]string)
	for _, seg := range strings.Split(s, ";") {
		if seg == "" {
			continue
		}
		key, value, _ := strings.Cut(seg, "=")
		props[key] = value
	}
	return props
}
