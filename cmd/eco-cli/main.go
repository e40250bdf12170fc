// Command eco-cli evaluates tray scenarios and prints the results as JSON.
//
// Usage:
//
//	eco-cli [-config path] scenario <name>
//	eco-cli [-config path] scenarios
//	eco-cli [-config path] run-all
//	eco-cli [-config path] materials
//	eco-cli [-config path] decay <material> <environment> <days>...
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/rshade/ecotray/internal/config"
	"github.com/rshade/ecotray/internal/domain/materials"
	"github.com/rshade/ecotray/internal/logging"
	"github.com/rshade/ecotray/internal/scenario"
	decaysvc "github.com/rshade/ecotray/internal/services/decay"
	"github.com/rshade/ecotray/internal/services/ecoscore"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("eco-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to config YAML (default $"+config.PathEnvVar+")")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: eco-cli [-config path] <scenario NAME | scenarios | run-all | materials | decay MATERIAL ENV DAYS...>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	logger := logging.New(stderr, logging.OptionsFromEnv("eco-cli"))

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load config")
		return exitError
	}

	app, err := newApp(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize")
		return exitError
	}

	out, err := app.dispatch(fs.Args())
	if errors.Is(err, errUsage) {
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return exitUsage
	}
	if err != nil {
		logger.Error().Err(err).Msg("Evaluation failed")
		return exitError
	}

	body, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		logger.Error().Err(err).Msg("Failed to encode output")
		return exitError
	}
	fmt.Fprintln(stdout, string(body))
	return exitOK
}

type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	catalog  *materials.Catalog
	registry *scenario.Registry
	runner   *scenario.Runner
}

func newApp(cfg *config.Config, logger zerolog.Logger) (*app, error) {
	catalog, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	registry, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	calculator, err := ecoscore.NewCalculatorWithPolicy(catalog, cfg.Policy)
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:      cfg,
		logger:   logger,
		catalog:  catalog,
		registry: registry,
		runner:   scenario.NewRunnerWithCalculator(catalog, calculator),
	}, nil
}

func (a *app) dispatch(args []string) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: missing command", errUsage)
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "scenario":
		if len(rest) != 1 {
			return nil, fmt.Errorf("%w: scenario takes exactly one name", errUsage)
		}
		return a.runScenario(rest[0])
	case "scenarios":
		return a.registry.List(), nil
	case "run-all":
		return a.runAll()
	case "materials":
		return a.catalog.Profiles(), nil
	case "decay":
		return a.decay(rest)
	default:
		return nil, fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func (a *app) runScenario(name string) (scenario.Report, error) {
	s, err := a.registry.Get(name)
	if err != nil {
		return scenario.Report{}, err
	}
	rep, err := a.runner.Run(a.cfg.EffectiveContext(), s)
	if err != nil {
		return scenario.Report{}, err
	}
	a.logger.Info().
		Str("scenario", s.Name).
		Str("material_id", string(s.Config.MaterialID)).
		Str("evaluation_id", rep.EvaluationID).
		Float64("total_score", rep.Eco.EcoScore.TotalScore).
		Msg("Scenario evaluated")
	return rep, nil
}

func (a *app) runAll() ([]scenario.Report, error) {
	reports, err := a.runner.RunAll(a.cfg.EffectiveContext(), a.registry.List())
	if err != nil {
		return nil, err
	}
	a.logger.Info().Int("scenarios", len(reports)).Msg("Scenarios evaluated")
	return reports, nil
}

type decayOutput struct {
	MaterialID  materials.MaterialID  `json:"materialId"`
	Environment materials.Environment `json:"environment"`
	Points      []decaysvc.Point      `json:"points"`
}

func (a *app) decay(args []string) (decayOutput, error) {
	if len(args) < 3 {
		return decayOutput{}, fmt.Errorf("%w: decay takes a material, an environment and at least one day count", errUsage)
	}

	days := make([]float64, 0, len(args)-2)
	for _, arg := range args[2:] {
		d, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return decayOutput{}, fmt.Errorf("%w: invalid day count %q", errUsage, arg)
		}
		days = append(days, d)
	}

	profile, err := a.catalog.Get(materials.MaterialID(args[0]))
	if err != nil {
		return decayOutput{}, err
	}
	env := materials.Environment(args[1])
	points, err := decaysvc.Curve(profile, env, days)
	if err != nil {
		return decayOutput{}, err
	}
	return decayOutput{MaterialID: profile.ID, Environment: env, Points: points}, nil
}
