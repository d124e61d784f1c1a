// Package sweep provides uniform per-item result handling for batch jobs.
// A sweep processes many independent records; one record's failure must not
// abort the rest. Collecting a Result per item and folding at the end makes
// the partial-failure semantics explicit and testable without I/O.
package sweep

// Result is the outcome of processing a single item in a sweep.
type Result[T any] struct {
	Item T
	Err  error
}

// Ok returns a successful result for item.
func Ok[T any](item T) Result[T] {
	return Result[T]{Item: item}
}

// Fail returns a failed result for item.
func Fail[T any](item T, err error) Result[T] {
	return Result[T]{Item: item, Err: err}
}

// Failed reports whether the result carries an error.
func (r Result[T]) Failed() bool {
	return r.Err != nil
}

// Fold separates results into successes and failures, preserving order.
func Fold[T any](results []Result[T]) (succeeded []T, failed []Result[T]) {
	for _, r := range results {
		if r.Failed() {
			failed = append(failed, r)
		} else {
			succeeded = append(succeeded, r.Item)
		}
	}
	return succeeded, failed
}

// Summary holds aggregate counts for a completed sweep.
type Summary struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Total     int `json:"total"`
}

// Summarize folds results down to counts.
func Summarize[T any](results []Result[T]) Summary {
	ok, failed := Fold(results)
	return Summary{
		Succeeded: len(ok),
		Failed:    len(failed),
		Total:     len(results),
	}
}
