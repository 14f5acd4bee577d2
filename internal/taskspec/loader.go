package taskspec

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/stratum/internal/errors"
)

// Well-known specification locations, tried in order.
var specFileNames = []string{"tasks.yaml", "tasks.yml", "tasks.toml"}

// Repository defines the interface for loading TaskSpec documents.
// This interface enables dependency injection and makes testing easier.
type Repository interface {
	// Load reads, normalizes and validates a TaskSpec from a file
	Load(path string) (*TaskSpec, error)
}

// FileRepository implements Repository for file-based specifications.
// It understands YAML and TOML, selected by file extension.
type FileRepository struct{}

// NewFileRepository creates a new file-based spec repository
func NewFileRepository() *FileRepository {
	return &FileRepository{}
}

// Load reads a TaskSpec from a YAML or TOML file. The returned spec has
// defaults applied and has passed full validation; parse-then-validate
// with no side effects.
func (r *FileRepository) Load(path string) (*TaskSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewTaskSpecNotFoundError(path)
		}
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "read task spec", err)
	}

	var spec TaskSpec
	switch filepath.Ext(path) {
	case ".toml":
		if err := toml.Unmarshal(data, &spec); err != nil {
			return nil, errors.NewFileUnmarshalError(path, "TOML", err)
		}
	default:
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return nil, errors.NewFileUnmarshalError(path, "YAML", err)
		}
	}

	spec.normalize()
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	return &spec, nil
}

// FindSpecFile returns the path of the task specification within the
// project's .stratum directory, or an empty string if none exists.
func FindSpecFile(projectDir string) string {
	for _, name := range specFileNames {
		path := filepath.Join(projectDir, ".stratum", name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Default instance for package-level functions
var defaultRepository = NewFileRepository()

// Load reads a TaskSpec using the default repository.
func Load(path string) (*TaskSpec, error) {
	return defaultRepository.Load(path)
}

// Compile-time verification that FileRepository implements Repository
var _ Repository = (*FileRepository)(nil)
