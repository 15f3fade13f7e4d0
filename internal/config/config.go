// Package config handles pipeline configuration: a YAML file under the
// .citegraph directory plus CG_-prefixed environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// CitegraphDir is the per-project directory holding config and output.
	CitegraphDir = ".citegraph"
	// ConfigFile is the config file name.
	ConfigFile = "config.yaml"
	// DBFile is the exported graph database name.
	DBFile = "graph.db"
	// TriplesFile is the exported N-Triples file name.
	TriplesFile = "graph.nt"
)

// Config is the full pipeline configuration. Zero values mean "use the
// client default".
type Config struct {
	PDFDir string `yaml:"pdf_dir,omitempty"`

	Grobid struct {
		URL string `yaml:"url,omitempty"`
	} `yaml:"grobid,omitempty"`

	NER struct {
		URL string `yaml:"url,omitempty"`
	} `yaml:"ner,omitempty"`

	OpenAIRE struct {
		URL string `yaml:"url,omitempty"`
	} `yaml:"openaire,omitempty"`

	OpenAlex struct {
		URL    string `yaml:"url,omitempty"`
		Mailto string `yaml:"mailto,omitempty"`
	} `yaml:"openalex,omitempty"`

	Embedding struct {
		URL   string `yaml:"url,omitempty"`
		Model string `yaml:"model,omitempty"`
	} `yaml:"embedding,omitempty"`

	Similarity struct {
		Threshold float64 `yaml:"threshold,omitempty"`
	} `yaml:"similarity,omitempty"`
}

// Path helpers from a project root.

// CitegraphPath returns the path to the .citegraph directory.
func CitegraphPath(root string) string {
	return filepath.Join(root, CitegraphDir)
}

// ConfigPath returns the path to config.yaml.
func ConfigPath(root string) string {
	return filepath.Join(root, CitegraphDir, ConfigFile)
}

// DBPath returns the path to the exported graph database.
func DBPath(root string) string {
	return filepath.Join(root, CitegraphDir, DBFile)
}

// TriplesPath returns the path to the exported N-Triples file.
func TriplesPath(root string) string {
	return filepath.Join(root, CitegraphDir, TriplesFile)
}

// IsProject checks if the given path contains a citegraph project.
func IsProject(root string) bool {
	info, err := os.Stat(CitegraphPath(root))
	return err == nil && info.IsDir()
}

// FindProject walks up from the given path to find a citegraph project.
// Returns the project root path or an error if not found.
func FindProject(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsProject(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a citegraph project (no .citegraph directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the project at the given root and
// applies environment overrides. A missing config file is not an error;
// overrides still apply to the zero config.
func Load(root string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(ConfigPath(root))
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	_ = godotenv.Load()
	cfg.applyEnv()
	return &cfg, nil
}

// Save writes configuration to the project at the given root, creating
// the .citegraph directory if needed.
func (c *Config) Save(root string) error {
	if err := os.MkdirAll(CitegraphPath(root), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", CitegraphDir, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// applyEnv overrides fields from CG_-prefixed environment variables.
func (c *Config) applyEnv() {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.PDFDir, "CG_PDF_DIR")
	set(&c.Grobid.URL, "CG_GROBID_URL")
	set(&c.NER.URL, "CG_NER_URL")
	set(&c.OpenAIRE.URL, "CG_OPENAIRE_URL")
	set(&c.OpenAlex.URL, "CG_OPENALEX_URL")
	set(&c.OpenAlex.Mailto, "CG_OPENALEX_MAILTO")
	set(&c.Embedding.URL, "CG_EMBEDDING_URL")
	set(&c.Embedding.Model, "CG_EMBEDDING_MODEL")
	if v := os.Getenv("CG_SIMILARITY_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Similarity.Threshold = f
		}
	}
}

// Settable keys for `config get` and `config set`.
var keys = map[string]struct {
	get func(*Config) string
	set func(*Config, string) error
}{
	"pdf_dir": {
		get: func(c *Config) string { return c.PDFDir },
		set: func(c *Config, v string) error { c.PDFDir = v; return nil },
	},
	"grobid.url": {
		get: func(c *Config) string { return c.Grobid.URL },
		set: func(c *Config, v string) error { c.Grobid.URL = v; return nil },
	},
	"ner.url": {
		get: func(c *Config) string { return c.NER.URL },
		set: func(c *Config, v string) error { c.NER.URL = v; return nil },
	},
	"openaire.url": {
		get: func(c *Config) string { return c.OpenAIRE.URL },
		set: func(c *Config, v string) error { c.OpenAIRE.URL = v; return nil },
	},
	"openalex.url": {
		get: func(c *Config) string { return c.OpenAlex.URL },
		set: func(c *Config, v string) error { c.OpenAlex.URL = v; return nil },
	},
	"openalex.mailto": {
		get: func(c *Config) string { return c.OpenAlex.Mailto },
		set: func(c *Config, v string) error { c.OpenAlex.Mailto = v; return nil },
	},
	"embedding.url": {
		get: func(c *Config) string { return c.Embedding.URL },
		set: func(c *Config, v string) error { c.Embedding.URL = v; return nil },
	},
	"embedding.model": {
		get: func(c *Config) string { return c.Embedding.Model },
		set: func(c *Config, v string) error { c.Embedding.Model = v; return nil },
	},
	"similarity.threshold": {
		get: func(c *Config) string {
			if c.Similarity.Threshold == 0 {
				return ""
			}
			return strconv.FormatFloat(c.Similarity.Threshold, 'g', -1, 64)
		},
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("similarity.threshold must be a number: %q", v)
			}
			c.Similarity.Threshold = f
			return nil
		},
	},
}

// Keys returns all settable config keys, sorted.
func Keys() []string {
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	entry, ok := keys[key]
	if !ok {
		return "", fmt.Errorf("unknown config key: %s (valid: %v)", key, Keys())
	}
	return entry.get(c), nil
}

// Set updates a config key from its string value.
func (c *Config) Set(key, value string) error {
	entry, ok := keys[key]
	if !ok {
		return fmt.Errorf("unknown config key: %s (valid: %v)", key, Keys())
	}
	return entry.set(c, value)
}
