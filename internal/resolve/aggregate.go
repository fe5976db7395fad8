package resolve

import "github.com/sourcegraph/conc/pool"

// ResolveAll resolves every input concurrently and returns the resolutions in
// input order.
func (r *Resolver) ResolveAll(inputs []string) []Resolution {
	results := make([]Resolution, len(inputs))
	p := pool.New().WithMaxGoroutines(r.concurrency)
	for i, input := range inputs {
		p.Go(func() {
			results[i] = r.Resolve(input)
		})
	}
	p.Wait()
	return results
}

// Result is the aggregated outcome of resolving a batch of inputs.
type Result struct {
	Files           []ResolvedFile `json:"files"`
	InvalidPatterns []Resolution   `json:"invalid_patterns,omitempty"`
	MissingPaths    []Resolution   `json:"missing_paths,omitempty"`
	NotFound        []Resolution   `json:"not_found,omitempty"`
	Ambiguous       []Resolution   `json:"ambiguous,omitempty"`
	Issues          []Issue        `json:"issues,omitempty"`
}

// Aggregate merges per-input resolutions. Files keep the order in which they
// first appear and are deduplicated by canonical path; failures are grouped
// by kind.
func Aggregate(resolutions []Resolution) *Result {
	result := &Result{Files: make([]ResolvedFile, 0)}
	seen := make(map[string]bool)

	for _, res := range resolutions {
		result.Issues = append(result.Issues, res.Issues...)

		if res.OK() {
			for _, file := range res.Files {
				if seen[file.CanonicalPath] {
					continue
				}
				seen[file.CanonicalPath] = true
				result.Files = append(result.Files, file)
			}
			continue
		}

		switch res.Kind {
		case KindInvalidPattern:
			result.InvalidPatterns = append(result.InvalidPatterns, res)
		case KindPathDoesNotExist:
			result.MissingPaths = append(result.MissingPaths, res)
		case KindNotFound:
			result.NotFound = append(result.NotFound, res)
		case KindAmbiguous:
			result.Ambiguous = append(result.Ambiguous, res)
		}
	}

	return result
}

// Failed reports whether any input failed to resolve. Files collected from
// other inputs do not change the answer.
func (r *Result) Failed() bool {
	return len(r.InvalidPatterns) > 0 ||
		len(r.MissingPaths) > 0 ||
		len(r.NotFound) > 0 ||
		len(r.Ambiguous) > 0
}

// Err returns an *UnresolvedInputsError when the result failed, nil otherwise.
func (r *Result) Err() error {
	if !r.Failed() {
		return nil
	}
	return &UnresolvedInputsError{
		InvalidPatterns: len(r.InvalidPatterns),
		MissingPaths:    len(r.MissingPaths),
		NotFound:        len(r.NotFound),
		Ambiguous:       len(r.Ambiguous),
	}
}

// Unresolved returns the failed resolutions in report order.
func (r *Result) Unresolved() []Resolution {
	out := make([]Resolution, 0, len(r.InvalidPatterns)+len(r.MissingPaths)+len(r.NotFound)+len(r.Ambiguous))
	out = append(out, r.InvalidPatterns...)
	out = append(out, r.MissingPaths...)
	out = append(out, r.NotFound...)
	out = append(out, r.Ambiguous...)
	return out
}
