// Package scheduler resolves many target kinds against one registry concurrently.
package scheduler

import (
	"context"
	"errors"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/targets/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

const (
	// TracerName is the instrumentation name of the scheduler tracer.
	TracerName = "go.trai.ch/targets/scheduler"
	// RunSpanName names the span covering one Run call.
	RunSpanName = "targets.run"
	// ResolveSpanName names the span covering one kind resolution.
	ResolveSpanName = "targets.resolve"

	attrKind   = "target.kind"
	attrOutput = "target.output"
	attrCount  = "target.count"
)

// Resolver produces a descriptor for one kind. *domain.Registry satisfies it.
type Resolver interface {
	Resolve(kind string, env domain.EnvironmentInfo) (domain.TargetDescriptor, error)
}

// Scheduler fans resolution requests out over a bounded worker pool.
type Scheduler struct {
	tracer trace.Tracer
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Scheduler) {
		s.tracer = tracer
	}
}

// NewScheduler creates a new Scheduler.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{tracer: otel.Tracer(TracerName)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run resolves kinds against env. Repeated kind names are resolved once and
// descriptors come back in first-request order. A failing kind does not stop
// the others; all failures are joined into the returned error together with
// the descriptors that did resolve. parallelism <= 0 uses the number of CPUs.
func (s *Scheduler) Run(
	ctx context.Context,
	resolver Resolver,
	kinds []string,
	env domain.EnvironmentInfo,
	parallelism int,
) ([]domain.TargetDescriptor, error) {
	unique := dedupe(kinds)
	if len(unique) == 0 {
		return nil, domain.ErrNoTargetsSpecified
	}

	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	ctx, runSpan := s.tracer.Start(ctx, RunSpanName, trace.WithAttributes(
		attribute.Int(attrCount, len(unique)),
		attribute.String("env.target_platform", env.TargetPlatform.String()),
		attribute.String("env.configuration", env.Configuration.String()),
	))
	defer runSpan.End()

	results := make([]domain.TargetDescriptor, len(unique))
	errs := make([]error, len(unique))
	resolved := make([]bool, len(unique))

	var g errgroup.Group
	g.SetLimit(parallelism)

	// Each goroutine owns index i of the result slices.
	for i, kind := range unique {
		g.Go(func() error {
			desc, err := s.resolveOne(ctx, resolver, kind, env)
			if err != nil {
				errs[i] = err
				return nil
			}
			results[i] = desc
			resolved[i] = true
			return nil
		})
	}
	_ = g.Wait()

	descriptors := make([]domain.TargetDescriptor, 0, len(unique))
	for i := range unique {
		if resolved[i] {
			descriptors = append(descriptors, results[i])
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		runSpan.RecordError(err)
		runSpan.SetStatus(codes.Error, "target resolution failed")
	}
	return descriptors, err
}

func (s *Scheduler) resolveOne(
	ctx context.Context,
	resolver Resolver,
	kind string,
	env domain.EnvironmentInfo,
) (domain.TargetDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return domain.TargetDescriptor{}, err
	}

	_, span := s.tracer.Start(ctx, ResolveSpanName, trace.WithAttributes(attribute.String(attrKind, kind)))
	defer span.End()

	desc, err := resolver.Resolve(kind, env)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.TargetDescriptor{}, err
	}

	span.SetAttributes(attribute.String(attrOutput, desc.OutputName))
	return desc, nil
}

func dedupe(kinds []string) []string {
	seen := make(map[string]struct{}, len(kinds))
	unique := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		if _, ok := seen[kind]; ok {
			continue
		}
		seen[kind] = struct{}{}
		unique = append(unique, kind)
	}
	return unique
}
