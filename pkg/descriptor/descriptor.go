// Package descriptor parses artifact descriptions in an INI-like format.
//
// A description groups lines under bracketed section headers. The
// recognized sections are:
//
//	[relocations]
//	[dependencies]
//	[managedDependencies]
//	[repositories]
//
// Section names are case-insensitive and form a closed set; anything else
// is a FORMAT_ERROR. The relocation and dependency sections contain
// artifact coordinates of the form accepted by
// [artifact.ParseDefinition]. Dependency sections may specify exclusions,
// which attach to the next coordinate line that follows them:
//
//	-gid:aid
//
// A repository definition is of the form id:type:url, where the url keeps
// any embedded colons.
//
// # Example
//
//	[relocations]
//	gid:aid:ver:ext
//
//	[dependencies]
//	gid:aid:ver:ext:scope
//	-exclusion:aid
//	gid:aid2:ver:ext:scope:optional
//
//	[managedDependencies]
//	gid:aid2:ver2:ext:scope
//	-gid:aid
//
//	[repositories]
//	id:type:file:///test-repo
package descriptor

import (
	"github.com/depsketch/depsketch/pkg/artifact"
)

// Repository is a remote repository definition: three colon-delimited
// fields, with the url capturing everything after the second colon.
type Repository struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Description is the parsed form of one artifact description. All slices
// preserve document order and may be empty, never nil, when the
// corresponding section is present; absent sections yield nil slices.
type Description struct {
	Relocations         []artifact.Artifact   `json:"relocations,omitempty"`
	Dependencies        []artifact.Dependency `json:"dependencies,omitempty"`
	ManagedDependencies []artifact.Dependency `json:"managed_dependencies,omitempty"`
	Repositories        []Repository          `json:"repositories,omitempty"`
}
