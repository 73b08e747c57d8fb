// Package artifact defines the value records shared by the depsketch
// grammars: artifacts, dependencies, exclusions, and the colon-delimited
// coordinate notation that identifies an artifact.
//
// Artifacts are identified by "groupId:artifactId:version:extension"
// coordinates, optionally extended with a scope, an optional flag, and a
// semicolon-delimited property list:
//
//	gid:aid:ver:ext[:scope[:optional]][;key=value;key2=value2]
//
// All types are plain value records. They are created fresh per parse and
// never mutated afterwards, so they are safe for concurrent reads.
package artifact

import "strings"

// Artifact identifies one artifact by its coordinate plus free-form
// properties.
//
// Zero values: all string fields are empty, Properties is nil.
type Artifact struct {
	GroupID    string            `json:"group_id"`
	ArtifactID string            `json:"artifact_id"`
	Version    string            `json:"version"`
	Extension  string            `json:"extension"`
	Properties map[string]string `json:"properties,omitempty"`
}

// Coordinate returns the canonical coordinate string
// "groupId:artifactId:version:extension".
func (a Artifact) Coordinate() string {
	return strings.Join([]string{a.GroupID, a.ArtifactID, a.Version, a.Extension}, ":")
}

// Exclusion marks a transitive dependency to omit, identified by group and
// artifact id. Classifier and extension are always empty in this grammar,
// so they are not represented.
type Exclusion struct {
	GroupID    string `json:"group_id"`
	ArtifactID string `json:"artifact_id"`
}

// Dependency couples an artifact with its usage scope, optional flag, and
// the exclusions collected for it. Exclusions preserve document order.
type Dependency struct {
	Artifact   Artifact    `json:"artifact"`
	Scope      string      `json:"scope,omitempty"`
	Optional   bool        `json:"optional,omitempty"`
	Exclusions []Exclusion `json:"exclusions,omitempty"`
}
