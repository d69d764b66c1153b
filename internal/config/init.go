package config

import (
	"fmt"
	"os"
	"path/filepath"

	dberrors "git.home.luguber.info/inful/pyrefgen/internal/foundation/errors"
)

const exampleConfig = `# pyrefgen configuration
modules:
  - name: my_package
    # Directory containing my_package/. Looked up on search_paths,
    # PYTHONPATH and the working directory when omitted.
    path: src
    exclude_files:
      - my_package/conftest.py
    exclude_dirs:
      - tests
    # Overrides of the renderer options written into every stub.
    options:
      show_source: true
      members_order: alphabetical

search_paths:
  - src

output:
  directory: docs

logging:
  level: info   # debug | info | warn | error
  format: text  # text | json
`

// Init writes an example configuration to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return dberrors.ValidationError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).Build()
	}
	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return dberrors.WrapError(err, dberrors.CategoryFileSystem, "create config directory").Build()
		}
	}
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o644); err != nil {
		return dberrors.WrapError(err, dberrors.CategoryFileSystem, "write config file").
			WithContext("path", configPath).Build()
	}
	return nil
}
