package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tartampluch/go-teamroles/internal/config"
)

// catalogFile is the on-disk shape of a role catalog override.
type catalogFile struct {
	Roles []RoleDefinition `yaml:"roles"`
}

// LoadCatalog returns the built-in role cycle table, overlaid with any
// definitions found in the YAML file at path. An empty path returns the
// defaults unchanged. Overriding an existing role ID replaces the whole
// definition; new role IDs are added as long as they validate.
func LoadCatalog(path string) (Catalog, error) {
	catalog := DefaultCatalog()
	if path == "" {
		return catalog, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCatalogLoad, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCatalogLoad, err)
	}

	for _, role := range file.Roles {
		if err := role.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrCatalogLoad, err)
		}
		if role.Lookup < 1 {
			role.Lookup = 1
		}
		catalog[role.ID] = role
	}
	return catalog, nil
}
