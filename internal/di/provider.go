package di

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gemini-agent/internal/adapter/tool"
	"gemini-agent/internal/application/port/output"
	"gemini-agent/internal/application/service"
	"gemini-agent/internal/domain/entity"
	"gemini-agent/internal/infrastructure/llm/gemini"
	"gemini-agent/internal/usecase/agent"
	"gemini-agent/internal/usecase/runner"
)

var ErrModelUnavailable = errors.New("model client is not configured")

// LLMFactory builds the model client for one agent.
type LLMFactory func(cfg Config, model string, logger output.LoggerPort) (output.LLMPort, error)

type AgentOptions struct {
	Model       string
	Name        string
	Description string
	Instruction string
	// Nil means the default tool set (web search and page fetch).
	Tools []output.ToolPort
}

func DefaultAgentOptions() AgentOptions {
	return AgentOptions{
		Model:       entity.DefaultAgentModel,
		Name:        entity.DefaultAgentName,
		Description: entity.DefaultAgentDescription,
		Instruction: entity.DefaultAgentInstruction,
	}
}

// Provider owns the process wide agent and runner pair.
type Provider struct {
	mu      sync.Mutex
	env     output.ConfigPort
	logger  output.LoggerPort
	printer output.EventPrinter
	newLLM  LLMFactory

	agent  *agent.LLMAgent
	runner *runner.InMemoryRunner
}

type ProviderOption func(*Provider)

func WithLLMFactory(f LLMFactory) ProviderOption {
	return func(p *Provider) { p.newLLM = f }
}

func WithPrinter(printer output.EventPrinter) ProviderOption {
	return func(p *Provider) { p.printer = printer }
}

func NewProvider(env output.ConfigPort, logger output.LoggerPort, opts ...ProviderOption) *Provider {
	p := &Provider{
		env:    env,
		logger: logger,
		newLLM: NewGeminiLLM,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewGeminiLLM is the default LLMFactory.
func NewGeminiLLM(cfg Config, model string, logger output.LoggerPort) (output.LLMPort, error) {
	var llmCfg gemini.Config
	if cfg.UseVertexAI {
		var err error
		llmCfg, err = gemini.VertexConfig(cfg.Project, cfg.Location, cfg.AccessToken, model)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
		}
	} else {
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: %s is not set", ErrModelUnavailable, entity.EnvGoogleAPIKey)
		}
		llmCfg = gemini.DefaultConfig(cfg.APIKey, model)
	}

	if cfg.BaseURL != "" {
		llmCfg.BaseURL = cfg.BaseURL
	}
	llmCfg.Logger = logger
	return gemini.NewGeminiAdapter(llmCfg), nil
}

func defaultTools(logger output.LoggerPort) ([]output.ToolPort, error) {
	search, err := tool.NewDuckDuckGoSearchTool(0, logger)
	if err != nil {
		return nil, err
	}
	return []output.ToolPort{search, tool.NewFetchPageTool(logger)}, nil
}

// CreateAgentAndRunner builds a new pair and caches it, replacing any
// previous one.
func (p *Provider) CreateAgentAndRunner(ctx context.Context, opts AgentOptions) (*agent.LLMAgent, *runner.InMemoryRunner, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.createLocked(ctx, opts)
}

// EnsureRunner returns the cached runner, creating one with the default
// agent options on first use.
func (p *Provider) EnsureRunner(ctx context.Context) (*runner.InMemoryRunner, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.runner != nil {
		return p.runner, nil
	}

	opts := DefaultAgentOptions()
	opts.Model = p.env.GetWithDefault(EnvAgentModel, opts.Model)

	_, r, err := p.createLocked(ctx, opts)
	return r, err
}

// Runner returns the cached runner, or nil before the first creation.
func (p *Provider) Runner() *runner.InMemoryRunner {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.runner
}

func (p *Provider) createLocked(ctx context.Context, opts AgentOptions) (*agent.LLMAgent, *runner.InMemoryRunner, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	opts = withDefaults(opts)
	cfg := ConfigFromEnv(p.env)

	llm, err := p.newLLM(cfg, opts.Model, p.logger)
	if err != nil {
		p.logger.Error("Model client unavailable", "model", opts.Model, "vertex", cfg.UseVertexAI, "error", err)
		if errors.Is(err, ErrModelUnavailable) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}

	tools := opts.Tools
	if tools == nil {
		tools, err = defaultTools(p.logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create agent: %w", err)
		}
	}

	a, err := agent.New(entity.AgentSpec{
		Name:        opts.Name,
		Model:       opts.Model,
		Description: opts.Description,
		Instruction: opts.Instruction,
	}, llm, service.NewToolRegistry(tools...), p.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create agent: %w", err)
	}

	var runnerOpts []runner.Option
	if p.printer != nil {
		runnerOpts = append(runnerOpts, runner.WithPrinter(p.printer))
	}
	r, err := runner.New(a, p.logger, runnerOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create runner: %w", err)
	}

	p.agent = a
	p.runner = r
	p.logger.Info("Agent and runner created", "agent", opts.Name, "model", opts.Model, "tools", len(tools))
	return a, r, nil
}

// withDefaults fills only the model. An explicitly empty name is an error
// reported by the agent constructor.
func withDefaults(opts AgentOptions) AgentOptions {
	if opts.Model == "" {
		opts.Model = entity.DefaultAgentModel
	}
	return opts
}
