package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	json "github.com/apify-community/actors-mcp-client/src/json"
	"github.com/apify-community/actors-mcp-client/src/providers"
)

// VariableNotFound is returned when a referenced variable isn't present.
type VariableNotFound struct {
	VariableName string
}

func (e *VariableNotFound) Error() string {
	return fmt.Sprintf(
		"variable %q referenced in provider configuration not found. "+
			"Add it to the environment or to the client configuration.",
		e.VariableName,
	)
}

// VariablesConfig is the interface for any variable-loading strategy.
type VariablesConfig interface {
	// Load returns all variables available from this source.
	Load() (map[string]string, error)
	// Get returns a single variable value or an error if not present.
	Get(key string) (string, error)
}

// DotEnv implements VariablesConfig by loading a .env file.
type DotEnv struct {
	EnvFilePath string
}

func NewDotEnv(path string) *DotEnv {
	return &DotEnv{EnvFilePath: path}
}

// Load reads the .env file and returns a map of key to value.
func (d *DotEnv) Load() (map[string]string, error) {
	return godotenv.Read(d.EnvFilePath)
}

// Get loads the file and looks up a single key.
func (d *DotEnv) Get(key string) (string, error) {
	vars, err := d.Load()
	if err != nil {
		return "", err
	}
	if val, ok := vars[key]; ok {
		return val, nil
	}
	return "", &VariableNotFound{VariableName: key}
}

// ClientConfig holds resolved variables and provider settings.
type ClientConfig struct {
	// Variables explicitly passed in (takes precedence).
	Variables map[string]string

	// Optional path to a providers-definition file (.json, .yaml or .yml).
	ProvidersFilePath string

	// Additional variable sources, consulted in order after Variables.
	LoadVariablesFrom []VariablesConfig

	// Logger receives diagnostics such as skipped-provider warnings.
	// Defaults to a no-op.
	Logger func(format string, args ...interface{})
}

func (c *ClientConfig) logf(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger(format, args...)
	}
}

// NewClientConfig constructs a config with sensible defaults.
func NewClientConfig() *ClientConfig {
	return &ClientConfig{
		Variables: make(map[string]string),
	}
}

// GetVariable checks inline variables, then the configured sources, then the
// process environment.
func (c *ClientConfig) GetVariable(key string) (string, error) {
	if v, ok := c.Variables[key]; ok {
		return v, nil
	}
	for _, loader := range c.LoadVariablesFrom {
		if val, err := loader.Get(key); err == nil && val != "" {
			return val, nil
		}
	}
	if v := os.Getenv(key); v != "" {
		return v, nil
	}
	return "", &VariableNotFound{VariableName: key}
}

var varPattern = regexp.MustCompile(`\${(\w+)}|\$(\w+)`)

// SubstituteAny walks strings, maps and lists and does ${VAR}/$VAR
// substitution. Unresolved references are left untouched.
func (c *ClientConfig) SubstituteAny(x any) any {
	switch v := x.(type) {
	case string:
		return varPattern.ReplaceAllStringFunc(v, func(match string) string {
			g := varPattern.FindStringSubmatch(match)
			name := g[1]
			if name == "" {
				name = g[2]
			}
			val, err := c.GetVariable(name)
			if err != nil {
				return match
			}
			return val
		})
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = c.SubstituteAny(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = c.SubstituteAny(e)
		}
		return out
	default:
		return x
	}
}

// LoadProviders reads the providers file (a JSON or YAML array), substitutes
// variables and decodes each entry. Entries without a recognized
// provider_type are skipped with a warning.
func (c *ClientConfig) LoadProviders() ([]*providers.SSEProvider, error) {
	if c.ProvidersFilePath == "" {
		return nil, fmt.Errorf("no providers file configured")
	}
	data, err := os.ReadFile(c.ProvidersFilePath)
	if err != nil {
		return nil, fmt.Errorf("could not read providers file %q: %w", c.ProvidersFilePath, err)
	}

	var rawList []map[string]any
	switch filepath.Ext(c.ProvidersFilePath) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &rawList); err != nil {
			return nil, fmt.Errorf("invalid YAML in providers file %q: %w", c.ProvidersFilePath, err)
		}
	default:
		if err := json.Unmarshal(data, &rawList); err != nil {
			return nil, fmt.Errorf("invalid JSON in providers file %q: %w", c.ProvidersFilePath, err)
		}
	}

	var out []*providers.SSEProvider
	for _, raw := range rawList {
		subbed, _ := c.SubstituteAny(raw).(map[string]any)
		blob, err := json.Marshal(subbed)
		if err != nil {
			return nil, err
		}
		prov, err := providers.UnmarshalProvider(blob)
		if err != nil {
			c.logf("skipping provider %v: %v", raw["name"], err)
			continue
		}
		sp, ok := prov.(*providers.SSEProvider)
		if !ok {
			continue
		}
		if err := sp.Validate(); err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, nil
}
