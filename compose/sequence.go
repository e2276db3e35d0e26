package compose

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// ErrUndeclaredKey is returned when a stage built with Provides yields a
// key it did not declare.
var ErrUndeclaredKey = errors.New("stage returned undeclared key")

// Stage receives the caller's arguments merged with everything produced by
// earlier stages and returns the keys it contributes.
type Stage func(ctx context.Context, in Record) (Record, error)

// Pipeline is the function produced by Sequence.
type Pipeline func(ctx context.Context, args Record) (Record, error)

// Sequence runs stages one after another. Each stage sees args merged with
// the accumulated output of the stages before it, and its own output is
// merged into the accumulator with later keys winning. The accumulator,
// without args, is returned once every stage has completed.
//
// The first failing stage aborts the pipeline and its error is returned
// unchanged.
func Sequence(stages ...Stage) Pipeline {
	stages = slices.Clone(stages)
	return func(ctx context.Context, args Record) (Record, error) {
		acc := Record{}
		for _, stage := range stages {
			if stage == nil {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out, err := stage(ctx, args.Merge(acc))
			if err != nil {
				return nil, err
			}
			acc = acc.Merge(out)
		}
		return acc, nil
	}
}

// Provides wraps stage so that its output may only contain the listed
// keys. This makes the contribution of each stage explicit when a
// pipeline is assembled.
func Provides(keys []string, stage Stage) Stage {
	declared := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		declared[key] = struct{}{}
	}
	return func(ctx context.Context, in Record) (Record, error) {
		out, err := stage(ctx, in)
		if err != nil {
			return nil, err
		}
		for _, key := range out.Keys() {
			if _, ok := declared[key]; !ok {
				return nil, fmt.Errorf("%w: %q", ErrUndeclaredKey, key)
			}
		}
		return out, nil
	}
}
