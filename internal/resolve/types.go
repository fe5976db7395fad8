package resolve

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the outcome of resolving a single input token.
type Kind int

const (
	KindSuccess Kind = iota
	KindAmbiguous
	KindNotFound
	KindPathDoesNotExist
	KindInvalidPattern
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindAmbiguous:
		return "ambiguous"
	case KindNotFound:
		return "not-found"
	case KindPathDoesNotExist:
		return "path-does-not-exist"
	case KindInvalidPattern:
		return "invalid-pattern"
	default:
		return "unknown"
	}
}

// MarshalText lets Kind render as its name in JSON output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ResolvedFile is a file located on disk. Identity is CanonicalPath.
type ResolvedFile struct {
	DisplayPath   string `json:"path"`
	CanonicalPath string `json:"canonical_path"`
}

// Issue captures a non-fatal problem encountered while resolving or reading files.
type Issue struct {
	Input    string `json:"input,omitempty"`
	Path     string `json:"path,omitempty"`
	Severity string `json:"severity"` // warning | error
	Message  string `json:"message"`
}

// Resolution is the outcome of resolving one input token.
// Only the fields relevant to Kind are populated.
type Resolution struct {
	Kind         Kind           `json:"kind"`
	Input        string         `json:"input"`
	Files        []ResolvedFile `json:"files,omitempty"`
	Candidates   []string       `json:"candidates,omitempty"`
	PathTried    string         `json:"path_tried,omitempty"`
	PatternError string         `json:"pattern_error,omitempty"`
	Issues       []Issue        `json:"issues,omitempty"`
}

func Success(input string, files []ResolvedFile) Resolution {
	return Resolution{Kind: KindSuccess, Input: input, Files: files}
}

func Ambiguous(input string, candidates []string) Resolution {
	return Resolution{Kind: KindAmbiguous, Input: input, Candidates: candidates}
}

func NotFound(input string) Resolution {
	return Resolution{Kind: KindNotFound, Input: input}
}

func PathDoesNotExist(input, tried string) Resolution {
	return Resolution{Kind: KindPathDoesNotExist, Input: input, PathTried: tried}
}

func InvalidPattern(input, message string) Resolution {
	return Resolution{Kind: KindInvalidPattern, Input: input, PatternError: message}
}

// OK reports whether the token resolved to files.
func (r Resolution) OK() bool {
	return r.Kind == KindSuccess
}

// ErrUnresolvedInputs is matched by errors returned from Result.Err.
var ErrUnresolvedInputs = errors.New("unresolved inputs")

// UnresolvedInputsError summarises the failure buckets of an aggregated result.
type UnresolvedInputsError struct {
	InvalidPatterns int
	MissingPaths    int
	NotFound        int
	Ambiguous       int
}

func (e *UnresolvedInputsError) Error() string {
	parts := make([]string, 0, 4)
	if e.InvalidPatterns > 0 {
		parts = append(parts, fmt.Sprintf("%d invalid pattern(s)", e.InvalidPatterns))
	}
	if e.MissingPaths > 0 {
		parts = append(parts, fmt.Sprintf("%d missing path(s)", e.MissingPaths))
	}
	if e.NotFound > 0 {
		parts = append(parts, fmt.Sprintf("%d not found", e.NotFound))
	}
	if e.Ambiguous > 0 {
		parts = append(parts, fmt.Sprintf("%d ambiguous", e.Ambiguous))
	}
	return fmt.Sprintf("%s: %s", ErrUnresolvedInputs, strings.Join(parts, ", "))
}

func (e *UnresolvedInputsError) Is(target error) bool {
	return target == ErrUnresolvedInputs
}
