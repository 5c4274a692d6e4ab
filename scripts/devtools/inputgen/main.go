package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Profile lists the command scripts to generate.
type Profile struct {
	OutputDir string              `yaml:"outputDir"`
	Scenarios map[string]Scenario `yaml:"scenarios"`
}

// Scenario describes one random contest transcript.
type Scenario struct {
	Output      string `yaml:"output"`
	Seed        int64  `yaml:"seed"`
	Teams       int    `yaml:"teams"`
	Problems    int    `yaml:"problems"`
	Duration    int    `yaml:"duration"`
	Submissions int    `yaml:"submissions"`
	FreezeAfter int    `yaml:"freezeAfter"` // submissions before FREEZE, 0 never freezes
	FlushEvery  int    `yaml:"flushEvery"`
	QueryEvery  int    `yaml:"queryEvery"`
}

var verdicts = []string{"Accepted", "Wrong_Answer", "Runtime_Error", "Time_Limit_Exceed"}

func main() {
	profilePath := flag.String("profile", "configs/inputgen.yaml", "Path to scenario profile")
	outputDir := flag.String("output-dir", "", "Override output directory")
	flag.Parse()

	profilePathAbs, err := filepath.Abs(*profilePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolve profile path failed: %v\n", err)
		os.Exit(1)
	}
	profile, err := loadProfile(profilePathAbs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load profile failed: %v\n", err)
		os.Exit(1)
	}
	if *outputDir != "" {
		profile.OutputDir = *outputDir
	}
	if profile.OutputDir == "" {
		fmt.Fprintln(os.Stderr, "output directory is required")
		os.Exit(1)
	}
	if !filepath.IsAbs(profile.OutputDir) {
		profile.OutputDir = filepath.Join(filepath.Dir(profilePathAbs), profile.OutputDir)
	}
	if err := os.MkdirAll(profile.OutputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create output directory failed: %v\n", err)
		os.Exit(1)
	}

	names := make([]string, 0, len(profile.Scenarios))
	for name := range profile.Scenarios {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		scenario := profile.Scenarios[name]
		if err := scenario.validate(); err != nil {
			fmt.Fprintf(os.Stderr, "scenario %q invalid: %v\n", name, err)
			os.Exit(1)
		}
		output := scenario.Output
		if output == "" {
			output = name + ".in"
		}
		if !filepath.IsAbs(output) {
			output = filepath.Join(profile.OutputDir, output)
		}
		if err := writeScenario(output, scenario); err != nil {
			fmt.Fprintf(os.Stderr, "write scenario %q failed: %v\n", name, err)
			os.Exit(1)
		}
	}
}

func loadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile failed: %w", err)
	}
	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parse profile failed: %w", err)
	}
	if len(profile.Scenarios) == 0 {
		return nil, errors.New("profile has no scenarios")
	}
	return &profile, nil
}

func (s Scenario) validate() error {
	switch {
	case s.Teams < 1:
		return errors.New("teams must be positive")
	case s.Problems < 1 || s.Problems > 26:
		return errors.New("problems must be within 1..26")
	case s.Submissions < 0:
		return errors.New("submissions must not be negative")
	case s.FreezeAfter < 0 || s.FreezeAfter > s.Submissions:
		return errors.New("freezeAfter must be within 0..submissions")
	}
	return nil
}

func writeScenario(path string, s Scenario) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir failed: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create script failed: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := generate(w, s); err != nil {
		return err
	}
	return w.Flush()
}

// generate writes a command script whose submission times never decrease.
func generate(w io.Writer, s Scenario) error {
	rng := rand.New(rand.NewSource(s.Seed))
	duration := s.Duration
	if duration <= 0 {
		duration = 300
	}
	teams := make([]string, s.Teams)
	for i := range teams {
		teams[i] = fmt.Sprintf("team%03d", i+1)
	}

	var err error
	emit := func(format string, args ...interface{}) {
		if err == nil {
			_, err = fmt.Fprintf(w, format+"\n", args...)
		}
	}

	for _, team := range teams {
		emit("ADDTEAM %s", team)
	}
	emit("START DURATION %d PROBLEM %d", duration, s.Problems)

	for i := 1; i <= s.Submissions; i++ {
		at := i * duration / s.Submissions
		team := teams[rng.Intn(len(teams))]
		emit("SUBMIT %c BY %s WITH %s AT %d", 'A'+rng.Intn(s.Problems), team, verdicts[rng.Intn(len(verdicts))], at)
		if s.FlushEvery > 0 && i%s.FlushEvery == 0 {
			emit("FLUSH")
		}
		if s.QueryEvery > 0 && i%s.QueryEvery == 0 {
			emit("QUERY_RANKING %s", team)
			emit("QUERY_SUBMISSION %s WHERE PROBLEM=ALL AND STATUS=Accepted", team)
		}
		if i == s.FreezeAfter {
			emit("FREEZE")
		}
	}
	if s.FreezeAfter > 0 {
		emit("SCROLL")
	}
	emit("END")
	return err
}
