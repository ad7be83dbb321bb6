// Package topology loads and validates the compose deployment descriptor so
// misconfigured stacks are caught before anything is deployed.
package topology

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docker/go-connections/nat"
	"github.com/go-faster/errors"
	"gopkg.in/yaml.v3"
)

// RequiredServices is the full service set of a production deployment.
var RequiredServices = []string{ //nolint: gochecknoglobals
	"web", "db", "redis", "mailcatcher", "worker", "scheduler", "monitor",
}

// Service is one entry under the descriptor's services map.
type Service struct {
	Image     string   `yaml:"image"`
	Command   []string `yaml:"command"`
	DependsOn []string `yaml:"depends_on"`
	EnvFile   []string `yaml:"env_file"`
	Ports     []string `yaml:"ports"`
	Volumes   []string `yaml:"volumes"`
}

// Descriptor is the parsed compose file.
type Descriptor struct {
	Services map[string]Service        `yaml:"services"`
	Volumes  map[string]map[string]any `yaml:"volumes"`
}

// Load reads and parses the descriptor at path.
func Load(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read descriptor")
	}

	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(err, "could not parse descriptor")
	}

	return &d, nil
}

// Validate checks the descriptor for structural problems and returns one
// message per problem found. baseDir resolves relative env_file paths.
func (d *Descriptor) Validate(baseDir string) []string {
	var problems []string

	for _, name := range RequiredServices {
		if _, ok := d.Services[name]; !ok {
			problems = append(problems, "required service "+name+" is missing")
		}
	}

	names := make([]string, 0, len(d.Services))
	for name := range d.Services {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		svc := d.Services[name]

		if svc.Image == "" {
			problems = append(problems, "service "+name+" has no image")
		}

		for _, dep := range svc.DependsOn {
			if _, ok := d.Services[dep]; !ok {
				problems = append(problems,
					"service "+name+" depends on unknown service "+dep)
			}
		}

		for _, port := range svc.Ports {
			if _, err := nat.ParsePortSpec(port); err != nil {
				problems = append(problems,
					"service "+name+" has invalid port "+port+": "+err.Error())
			}
		}

		for _, vol := range svc.Volumes {
			source := strings.SplitN(vol, ":", 2)[0]
			if strings.HasPrefix(source, "/") || strings.HasPrefix(source, ".") {
				continue // bind mount, nothing to declare
			}
			if _, ok := d.Volumes[source]; !ok {
				problems = append(problems,
					"service "+name+" mounts undeclared volume "+source)
			}
		}

		for _, envFile := range svc.EnvFile {
			path := envFile
			if !filepath.IsAbs(path) {
				path = filepath.Join(baseDir, envFile)
			}
			if _, err := os.Stat(path); err != nil {
				problems = append(problems,
					"service "+name+" references missing env file "+envFile)
			}
		}
	}

	problems = append(problems, d.cycles(names)...)

	return problems
}

// cycles reports dependency cycles among services using a DFS with colors.
func (d *Descriptor) cycles(names []string) []string {
	const (
		white = iota
		grey
		black
	)

	color := make(map[string]int, len(d.Services))

	var problems []string
	var visit func(name string, path []string)
	visit = func(name string, path []string) {
		color[name] = grey
		for _, dep := range d.Services[name].DependsOn {
			// copy so sibling recursions never share a backing array
			branch := make([]string, len(path), len(path)+1)
			copy(branch, path)
			branch = append(branch, dep)

			switch color[dep] {
			case grey:
				problems = append(problems,
					"dependency cycle: "+strings.Join(branch, " -> "))
			case white:
				visit(dep, branch)
			}
		}
		color[name] = black
	}

	for _, name := range names {
		if color[name] == white {
			visit(name, []string{name})
		}
	}

	return problems
}
