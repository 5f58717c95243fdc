package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/urbanfire/backend/internal/domain"
	"github.com/urbanfire/backend/internal/firemodel"
	"github.com/urbanfire/backend/internal/scenario"
)

var errMissingOrigin = errors.New("--lat and --lon are required unless --scenario is given")

type runOptions struct {
	params domain.SimulationParameters
	format string
}

func runSimulate(w io.Writer, opts runOptions) error {
	result, err := firemodel.Simulate(opts.params)
	if err != nil {
		return err
	}
	return printResult(w, result, opts.format)
}

func runScenario(w io.Writer, path, format string) error {
	s, err := loadValid(path)
	if err != nil {
		return err
	}
	params, err := s.Parameters()
	if err != nil {
		return err
	}

	if format != "json" {
		fmt.Fprintf(w, "Scenario: %s\n\n", s.Name)
	}
	return runSimulate(w, runOptions{params: params, format: format})
}

func runValidate(w io.Writer, path string) error {
	s, err := scenario.Load(path)
	if err != nil {
		return err
	}

	errs := s.Validate()
	if len(errs) == 0 {
		fmt.Fprintf(w, "Result: VALID (%s)\n", s.Name)
		return nil
	}

	fmt.Fprintf(w, "ERRORS (%d):\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(w, "  %s\n", e)
	}
	return fmt.Errorf("scenario %s is invalid", path)
}

func loadValid(path string) (*scenario.Scenario, error) {
	s, err := scenario.Load(path)
	if err != nil {
		return nil, err
	}
	if errs := s.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("scenario %s is invalid: %w", path, errors.Join(errs...))
	}
	return s, nil
}
