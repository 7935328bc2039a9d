// File: api/schemas/snapshot.go
// Wire-level data model for a structure scan. Everything in this package is
// shared between the scanner internals and consumers of the JSON snapshot;
// field names are the serialization contract and must stay stable.
package schemas

import "time"

// FileRole is the architectural role assigned to a scanned file.
type FileRole string

const (
	RoleController FileRole = "controller"
	RoleModel      FileRole = "model"
	RoleRoute      FileRole = "route"
	RoleService    FileRole = "service"
	RoleMiddleware FileRole = "middleware"
	RoleConfig     FileRole = "config"
	RoleUnknown    FileRole = "unknown"
)

// FunctionKind distinguishes how a function is declared or used.
type FunctionKind string

const (
	FunctionDeclaration FunctionKind = "function"
	FunctionMethod      FunctionKind = "method"
	FunctionEndpoint    FunctionKind = "endpoint"
	FunctionMiddleware  FunctionKind = "middleware"
)

// ClassKind distinguishes class-like declarations.
type ClassKind string

const (
	ClassDeclaration ClassKind = "class"
	ClassInterface   ClassKind = "interface"
	ClassTypeAlias   ClassKind = "type"
)

// CodeBlockKind tags a single tagged source line with the concern it touches.
type CodeBlockKind string

const (
	CodeBlockAPICall       CodeBlockKind = "api_call"
	CodeBlockDBQuery       CodeBlockKind = "db_query"
	CodeBlockAuthCheck     CodeBlockKind = "auth_check"
	CodeBlockFileOperation CodeBlockKind = "file_operation"
	CodeBlockThirdParty    CodeBlockKind = "third_party"
)

// Importance ranks a code block for consumers that triage findings.
type Importance string

const (
	ImportanceCritical Importance = "critical"
	ImportanceHigh     Importance = "high"
	ImportanceMedium   Importance = "medium"
	ImportanceLow      Importance = "low"
)

// RelationshipKind is the edge type between snapshot nodes.
type RelationshipKind string

const (
	RelationshipImport       RelationshipKind = "import"
	RelationshipFunctionCall RelationshipKind = "function_call"
	RelationshipAPICall      RelationshipKind = "api_call"
)

// FunctionFact describes one extracted function or handler.
type FunctionFact struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Kind       FunctionKind `json:"kind"`
	StartLine  int          `json:"startLine"`
	EndLine    int          `json:"endLine"`
	Parameters []string     `json:"parameters,omitempty"`
	IsAsync    bool         `json:"isAsync"`
	IsExported bool         `json:"isExported"`
	HTTPMethod string       `json:"httpMethod,omitempty"`
	Route      string       `json:"route,omitempty"`
}

// ClassFact describes one extracted class-like declaration.
type ClassFact struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Kind       ClassKind `json:"kind"`
	StartLine  int       `json:"startLine"`
	EndLine    int       `json:"endLine"`
	Methods    []string  `json:"methods,omitempty"`
	Properties []string  `json:"properties,omitempty"`
	Extends    string    `json:"extends,omitempty"`
	Implements []string  `json:"implements,omitempty"`
	IsExported bool      `json:"isExported"`
}

// CodeBlockFact tags one source line that touches an external provider or a
// sensitive operation. A single line may carry several facts.
type CodeBlockFact struct {
	ID         string        `json:"id"`
	Kind       CodeBlockKind `json:"kind"`
	Provider   string        `json:"provider,omitempty"`
	StartLine  int           `json:"startLine"`
	EndLine    int           `json:"endLine"`
	Text       string        `json:"text"`
	Importance Importance    `json:"importance"`
}

// Endpoint is one HTTP route registration found in a file.
type Endpoint struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// Position is a 2D layout coordinate for visual consumers.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ScannedFile is the per-file node of the snapshot.
type ScannedFile struct {
	ID               string          `json:"id"`
	Path             string          `json:"path"`
	Role             FileRole        `json:"role"`
	Lines            int             `json:"lines"`
	Imports          []string        `json:"imports,omitempty"`
	Exports          []string        `json:"exports,omitempty"`
	HasDefaultExport bool            `json:"hasDefaultExport"`
	Endpoints        []Endpoint      `json:"endpoints,omitempty"`
	Functions        []FunctionFact  `json:"functions,omitempty"`
	Classes          []ClassFact     `json:"classes,omitempty"`
	CodeBlocks       []CodeBlockFact `json:"codeBlocks,omitempty"`
	Position         Position        `json:"position"`

	// Content is the raw file body, carried between pipeline stages and
	// never serialized.
	Content string `json:"-"`
}

// Relationship is one directed edge between two snapshot nodes. TargetID may
// name a synthetic external-provider node rather than a scanned file.
type Relationship struct {
	ID       string           `json:"id"`
	SourceID string           `json:"sourceId"`
	TargetID string           `json:"targetId"`
	Kind     RelationshipKind `json:"kind"`
	Label    string           `json:"label,omitempty"`
}

// VCSInfo carries optional repository metadata for the scanned root.
type VCSInfo struct {
	Branch string `json:"branch,omitempty"`
	Commit string `json:"commit,omitempty"`
}

// Snapshot is the complete, self-consistent result of one scan. It is
// produced atomically: consumers never observe a partially built snapshot.
type Snapshot struct {
	ScanID        string         `json:"scanId"`
	ProjectRoot   string         `json:"projectRoot"`
	ScannedAt     time.Time      `json:"scannedAt"`
	Files         []ScannedFile  `json:"files"`
	Relationships []Relationship `json:"relationships"`
	VCS           *VCSInfo       `json:"vcs,omitempty"`
}
