// pkg/apiclient/definition.go
// YAML API definition loader
//
// SEARCH ORDER:
//  1. $USERDIR_API_DEFINITIONS/<service>.yaml
//  2. ~/.userdir/api_definitions/<service>.yaml
//  3. definitions/<service>.yaml embedded in the binary
//
// Definitions are cached after the first successful load.

package apiclient

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// DefinitionsEnv points at a directory of override definitions.
const DefinitionsEnv = "USERDIR_API_DEFINITIONS"

//go:embed definitions/*.yaml
var embeddedDefinitions embed.FS

var (
	definitionCache = make(map[string]*APIDefinition)
	cacheMu         sync.RWMutex
)

// LoadDefinition loads the API definition for service, honoring overrides.
// An override that exists but does not parse is an error rather than a silent
// fallback to the embedded copy.
func LoadDefinition(service string) (*APIDefinition, error) {
	cacheMu.RLock()
	if cached, ok := definitionCache[service]; ok {
		cacheMu.RUnlock()
		return cached, nil
	}
	cacheMu.RUnlock()

	var def *APIDefinition
	var err error

	path := overridePath(service)
	if path != "" {
		def, err = loadDefinitionFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load API definition override %s: %w", path, err)
		}
	} else {
		def, err = loadEmbeddedDefinition(service)
		if err != nil {
			return nil, fmt.Errorf("failed to load API definition for %s: %w", service, err)
		}
	}

	cacheMu.Lock()
	definitionCache[service] = def
	cacheMu.Unlock()

	return def, nil
}

func overridePath(service string) string {
	candidates := []string{}
	if dir := os.Getenv(DefinitionsEnv); dir != "" {
		candidates = append(candidates, filepath.Join(dir, service+".yaml"))
	}
	if home, _ := os.UserHomeDir(); home != "" {
		candidates = append(candidates, filepath.Join(home, ".userdir", "api_definitions", service+".yaml"))
	}
	for _, p := range candidates {
		if fileExists(p) {
			return p
		}
	}
	return ""
}

func loadDefinitionFromFile(path string) (*APIDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseDefinition(data)
}

func loadEmbeddedDefinition(service string) (*APIDefinition, error) {
	data, err := embeddedDefinitions.ReadFile("definitions/" + service + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("service %s not found in embedded definitions", service)
	}
	return ParseDefinition(data)
}

// ParseDefinition decodes and validates a YAML definition.
func ParseDefinition(data []byte) (*APIDefinition, error) {
	var def APIDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateDefinition(&def); err != nil {
		return nil, fmt.Errorf("invalid API definition: %w", err)
	}

	return &def, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ClearCache clears the definition cache (useful for testing or hot-reloading)
func ClearCache() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	definitionCache = make(map[string]*APIDefinition)
}

// validateDefinition reports every problem in def at once.
func validateDefinition(def *APIDefinition) error {
	var result *multierror.Error

	if def.Service == "" {
		result = multierror.Append(result, fmt.Errorf("service name is required"))
	}

	if len(def.Resources) == 0 {
		result = multierror.Append(result, fmt.Errorf("at least one resource is required"))
	}

	for _, resName := range sortedKeys(def.Resources) {
		res := def.Resources[resName]
		if res.Path == "" {
			result = multierror.Append(result, fmt.Errorf("resource %q: path is required", resName))
		}
		if len(res.Operations) == 0 {
			result = multierror.Append(result, fmt.Errorf("resource %q: at least one operation is required", resName))
		}
		for _, opName := range sortedKeys(res.Operations) {
			op := res.Operations[opName]
			for _, err := range validateOperation(&op) {
				result = multierror.Append(result, fmt.Errorf("resource %q operation %q: %w", resName, opName, err))
			}
		}
	}

	return result.ErrorOrNil()
}

func validateOperation(op *Operation) []error {
	var errs []error

	switch op.Method {
	case HTTPMethodGET, HTTPMethodPOST, HTTPMethodPUT, HTTPMethodPATCH, HTTPMethodDELETE:
	default:
		errs = append(errs, fmt.Errorf("invalid HTTP method: %q (must be GET, POST, PATCH, PUT, or DELETE)", op.Method))
	}

	for i, param := range op.Params {
		if param.Name == "" {
			errs = append(errs, fmt.Errorf("parameter %d: name is required", i))
		}
		if !isValidParameterType(param.Type) {
			errs = append(errs, fmt.Errorf("parameter %d: invalid type: %q", i, param.Type))
		}
	}

	for i, field := range op.Fields {
		if field.Name == "" {
			errs = append(errs, fmt.Errorf("field %d: name is required", i))
		}
		if !isValidParameterType(field.Type) {
			errs = append(errs, fmt.Errorf("field %d: invalid type: %q", i, field.Type))
		}
	}

	if len(op.Fields) > 0 && !op.Method.HasBody() {
		errs = append(errs, fmt.Errorf("fields are only allowed on POST, PUT and PATCH"))
	}

	return errs
}

func isValidParameterType(t ParameterType) bool {
	switch t {
	case ParameterTypeString, ParameterTypeInteger, ParameterTypeBoolean, ParameterTypeJSON:
		return true
	default:
		return false
	}
}

// ListResources returns all resource names in a definition, sorted.
func ListResources(def *APIDefinition) []string {
	return sortedKeys(def.Resources)
}

// ListOperations returns all operation names for a resource, sorted.
func ListOperations(def *APIDefinition, resource string) ([]string, error) {
	res, ok := def.Resources[resource]
	if !ok {
		return nil, fmt.Errorf("resource %q not found", resource)
	}
	return sortedKeys(res.Operations), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
