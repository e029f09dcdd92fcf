// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/modwire/modwire/internal/condition"
	"github.com/modwire/modwire/internal/config"
	"github.com/modwire/modwire/internal/metadata"
	"github.com/modwire/modwire/internal/registry"
	"github.com/modwire/modwire/internal/resolve"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer — all Cobra command handlers receive an App
	// reference and delegate business logic through its service interfaces.
	App struct {
		Config     ConfigProvider
		Resolution ResolutionService
		stdout     io.Writer
		stderr     io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp. Tests can
	// supply mock implementations to isolate specific service behavior.
	Dependencies struct {
		Config     ConfigProvider
		Resolution ResolutionService
		Stdout     io.Writer
		Stderr     io.Writer
	}

	// ResolveRequest captures all resolution inputs as an immutable value.
	// It is the request-scoped data contract between the CLI layer (Cobra
	// handlers) and the ResolutionService implementation.
	ResolveRequest struct {
		// SearchPaths are extra manifest roots from --search-path flags,
		// scanned before the configured ones.
		SearchPaths []string
		// Triggers are the resolution requests for this pass, in order.
		Triggers []resolve.Trigger
		// Capability is the --capability override. Zero value ("") means
		// use the configured (or default) capability key.
		Capability string
		// ConfigPath is the explicit --config flag value.
		ConfigPath string
	}

	// ModuleReport is one activated module in the final report.
	ModuleReport struct {
		ID      string `toml:"id"`
		Trigger string `toml:"trigger"`
	}

	// ResolveReport is the outcome of a full resolution pass: the globally
	// ordered activation set with trigger attribution, plus the merged
	// exclusions that were applied.
	ResolveReport struct {
		Modules    []ModuleReport `toml:"modules"`
		Exclusions []string       `toml:"exclusions,omitempty"`
	}

	// ResolutionService runs a full resolution pass. Implementations must
	// not write directly to stdout/stderr; results are returned as
	// structured data for the CLI layer to render. Run is the pass itself;
	// Inspect reports what discovery would feed it.
	ResolutionService interface {
		Run(ctx context.Context, req ResolveRequest) (*ResolveReport, error)
		Inspect(ctx context.Context, req ResolveRequest) (*InspectReport, error)
	}

	// InspectReport describes what discovery found, for the inspect command.
	InspectReport struct {
		Sources      []string
		Capabilities map[string][]string
		Facts        map[string]string
	}

	// ConfigProvider loads configuration using explicit options.
	// This abstraction enables testing with custom config sources or mock
	// implementations.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// appResolutionService is the production ResolutionService: it loads
	// the config, discovers manifests, builds the metadata index, and
	// drives the resolution engine trigger by trigger.
	appResolutionService struct {
		config ConfigProvider
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Resolution == nil {
		deps.Resolution = &appResolutionService{config: deps.Config}
	}

	return &App{
		Config:     deps.Config,
		Resolution: deps.Resolution,
		stdout:     deps.Stdout,
		stderr:     deps.Stderr,
	}, nil
}

// Run executes one resolution pass over the request's triggers.
func (s *appResolutionService) Run(ctx context.Context, req ResolveRequest) (*ResolveReport, error) {
	cfg, err := s.config.Load(ctx, config.LoadOptions{ConfigFilePath: req.ConfigPath})
	if err != nil {
		return nil, err
	}

	searchPaths := append([]string{}, req.SearchPaths...)
	for _, path := range cfg.SearchPaths {
		searchPaths = append(searchPaths, string(path))
	}

	reg, err := registry.Discover(searchPaths)
	if err != nil {
		return nil, err
	}
	index, err := metadata.Load(reg.MetadataPaths())
	if err != nil {
		return nil, err
	}

	env := config.NewEnvironment(cfg, nil)
	capability := req.Capability
	if capability == "" {
		capability = env.Capability()
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	// Requirement markers are satisfied by any discovered capability key or
	// module identifier.
	available := append(reg.Capabilities(), reg.KnownIdentifiers()...)

	resolver := resolve.New(resolve.Dependencies{
		Registry:    reg,
		Index:       index,
		Environment: env,
		Capability:  capability,
		Filters: []condition.Filter{
			condition.NewRequiresCapability(available),
			condition.NewOnProperty(env.Property),
		},
		Logger: logger,
	})

	triggers := req.Triggers
	if len(triggers) == 0 {
		triggers = []resolve.Trigger{{Name: "default"}}
	}

	group := resolve.NewGroup(index)
	exclusions := make(map[string]struct{})
	var exclusionOrder []string
	for _, trigger := range triggers {
		entry, err := resolver.Resolve(trigger)
		if err != nil {
			return nil, fmt.Errorf("resolve trigger %q: %w", trigger.Name, err)
		}
		group.Add(trigger.Name, entry)
		for _, id := range entry.Exclusions {
			if _, seen := exclusions[id]; !seen {
				exclusions[id] = struct{}{}
				exclusionOrder = append(exclusionOrder, id)
			}
		}
	}

	ordered, err := group.Finalize()
	if err != nil {
		return nil, err
	}

	report := &ResolveReport{Exclusions: exclusionOrder}
	for _, id := range ordered {
		owner, _ := group.Owner(id)
		report.Modules = append(report.Modules, ModuleReport{ID: id, Trigger: owner})
	}
	return report, nil
}

// Inspect discovers manifests and metadata without resolving anything.
func (s *appResolutionService) Inspect(ctx context.Context, req ResolveRequest) (*InspectReport, error) {
	cfg, err := s.config.Load(ctx, config.LoadOptions{ConfigFilePath: req.ConfigPath})
	if err != nil {
		return nil, err
	}

	searchPaths := append([]string{}, req.SearchPaths...)
	for _, path := range cfg.SearchPaths {
		searchPaths = append(searchPaths, string(path))
	}

	reg, err := registry.Discover(searchPaths)
	if err != nil {
		return nil, err
	}
	index, err := metadata.Load(reg.MetadataPaths())
	if err != nil {
		return nil, err
	}

	report := &InspectReport{
		Sources:      reg.Sources(),
		Capabilities: make(map[string][]string),
		Facts:        index.Entries(),
	}
	for _, capability := range reg.Capabilities() {
		report.Capabilities[capability] = reg.Candidates(capability)
	}
	return report, nil
}
