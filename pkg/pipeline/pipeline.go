package pipeline

import (
	"context"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/revolutionchain/ethfmt/pkg/analytics"
	"github.com/revolutionchain/ethfmt/pkg/eth"
	"github.com/revolutionchain/ethfmt/pkg/formatting"
)

var (
	ErrStageExists   = errors.New("stage already installed")
	ErrStageNotFound = errors.New("stage not found")
)

// Stage is one formatting layer. It resolves the formatters to use for a
// single call; *middleware.FormattingMiddleware implements it.
type Stage interface {
	Resolve(ctx context.Context, client eth.Transport, method string) (*formatting.FormatterSet, error)
}

type namedStage struct {
	name  string
	stage Stage
}

type Option func(*Pipeline) error

// Pipeline sends calls through an ordered list of stages. The first stage is
// the outermost one: it sees the caller's params first and the node's
// response last.
type Pipeline struct {
	transport eth.Transport

	mu     sync.RWMutex
	stages []namedStage

	analytics *analytics.Analytics
	logger    log.Logger
	debugMode bool
}

func New(transport eth.Transport, opts ...Option) (*Pipeline, error) {
	if transport == nil {
		return nil, errors.New("pipeline needs a transport")
	}

	p := &Pipeline{
		transport: transport,
		logger:    log.NewNopLogger(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Add installs stage below every installed stage, closest to the node.
func (p *Pipeline) Add(name string, stage Stage) error {
	return p.Inject(name, stage, -1)
}

// Inject installs stage at layer, 0 being the outermost. A negative layer or
// one past the end appends.
func (p *Pipeline) Inject(name string, stage Stage, layer int) error {
	if stage == nil {
		return errors.Errorf("stage %s is nil", name)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.indexOf(name) >= 0 {
		return errors.Wrap(ErrStageExists, name)
	}
	if layer < 0 || layer > len(p.stages) {
		layer = len(p.stages)
	}

	stages := make([]namedStage, 0, len(p.stages)+1)
	stages = append(stages, p.stages[:layer]...)
	stages = append(stages, namedStage{name: name, stage: stage})
	stages = append(stages, p.stages[layer:]...)
	p.stages = stages

	return nil
}

func (p *Pipeline) Remove(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.indexOf(name)
	if i < 0 {
		return errors.Wrap(ErrStageNotFound, name)
	}

	stages := make([]namedStage, 0, len(p.stages)-1)
	stages = append(stages, p.stages[:i]...)
	stages = append(stages, p.stages[i+1:]...)
	p.stages = stages

	return nil
}

// Replace swaps the stage installed under name, keeping its layer.
func (p *Pipeline) Replace(name string, stage Stage) error {
	if stage == nil {
		return errors.Errorf("stage %s is nil", name)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.indexOf(name)
	if i < 0 {
		return errors.Wrap(ErrStageNotFound, name)
	}

	stages := make([]namedStage, len(p.stages))
	copy(stages, p.stages)
	stages[i] = namedStage{name: name, stage: stage}
	p.stages = stages

	return nil
}

// Stages returns the installed stage names, outermost first.
func (p *Pipeline) Stages() []string {
	stages := p.snapshot()
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.name
	}
	return names
}

// must be called with p.mu held
func (p *Pipeline) indexOf(name string) int {
	for i, s := range p.stages {
		if s.name == name {
			return i
		}
	}
	return -1
}

func (p *Pipeline) snapshot() []namedStage {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stages
}

// Do runs one call through the pipeline and returns its final outcome. Node
// errors are part of the outcome; the returned error reports a failure of
// the pipeline itself, a formatter, a builder or the transport.
func (p *Pipeline) Do(ctx context.Context, method string, params formatting.Params) (*eth.Outcome, error) {
	outcome, err := p.do(ctx, method, params)
	if p.analytics != nil {
		p.analytics.Record(method, err == nil)
	}
	return outcome, err
}

func (p *Pipeline) do(ctx context.Context, method string, params formatting.Params) (*eth.Outcome, error) {
	stages := p.snapshot()

	sets := make([]*formatting.FormatterSet, len(stages))
	for i, s := range stages {
		set, err := s.stage.Resolve(ctx, p.transport, method)
		if err != nil {
			p.GetDebugLogger().Log("msg", "failed to resolve formatters", "stage", s.name, "method", method, "err", err)
			return nil, errors.Wrapf(err, "stage %s", s.name)
		}
		sets[i] = set
	}

	// the params each stage saw on the way in, for its null formatters
	seen := make([]formatting.Params, len(stages))
	for i, set := range sets {
		seen[i] = params
		formatted, err := set.ProcessRequest(method, params)
		if err != nil {
			p.GetDebugLogger().Log("msg", "request formatter failed", "stage", stages[i].name, "method", method, "err", err)
			return nil, err
		}
		params = formatted
	}

	if p.IsDebugEnabled() {
		p.GetDebugLogger().Log("msg", "sending request", "method", method, "params", len(params))
	}

	outcome, err := p.transport.Send(ctx, method, params)
	if err != nil {
		return nil, errors.Wrapf(err, "sending %s", method)
	}
	if outcome == nil {
		return nil, errors.Errorf("transport returned no outcome for %s", method)
	}
	if outcome.State() == eth.StateError {
		p.GetDebugLogger().Log("msg", "node returned an error", "method", method, "code", outcome.Error.Code, "message", outcome.Error.Message)
	}

	for i := len(sets) - 1; i >= 0; i-- {
		outcome, err = sets[i].ProcessResponse(method, seen[i], outcome)
		if err != nil {
			p.GetDebugLogger().Log("msg", "response formatter failed", "stage", stages[i].name, "method", method, "err", err)
			return nil, err
		}
	}

	return outcome, nil
}

// Call is Do for callers that want node errors as Go errors. A node error is
// returned as *eth.JSONRPCError.
func (p *Pipeline) Call(ctx context.Context, method string, params ...interface{}) (interface{}, error) {
	if params == nil {
		params = formatting.Params{}
	}
	outcome, err := p.Do(ctx, method, params)
	if err != nil {
		return nil, err
	}
	if outcome.State() == eth.StateError {
		return nil, outcome.Error
	}
	return outcome.Result, nil
}

func (p *Pipeline) Analytics() *analytics.Analytics {
	return p.analytics
}

func (p *Pipeline) IsDebugEnabled() bool {
	return p.debugMode
}

func (p *Pipeline) GetDebugLogger() log.Logger {
	if !p.IsDebugEnabled() {
		return log.NewNopLogger()
	}
	return level.Debug(p.logger)
}

func SetDebug(debug bool) func(*Pipeline) error {
	return func(p *Pipeline) error {
		p.debugMode = debug
		return nil
	}
}

func SetLogger(l log.Logger) func(*Pipeline) error {
	return func(p *Pipeline) error {
		p.logger = log.WithPrefix(l, "component", "pipeline")
		return nil
	}
}

func SetAnalytics(a *analytics.Analytics) func(*Pipeline) error {
	return func(p *Pipeline) error {
		p.analytics = a
		return nil
	}
}
