package vocabselect

import "context"

// Run evaluates strategies in order, returning the result of the first
// strategy whose item count reaches min. Later strategies are not
// evaluated once one succeeds. If every strategy falls short, Run
// returns nil with no error; a strategy error aborts the run.
func Run[S, T any](ctx context.Context, strategies []S, min int, eval func(context.Context, S) ([]T, error)) ([]T, error) {
	for _, strategy := range strategies {
		items, err := eval(ctx, strategy)
		if err != nil {
			return nil, err
		}
		if len(items) >= min {
			return items, nil
		}
	}
	return nil, nil
}
