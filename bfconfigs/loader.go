package bfconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/bf/cmds"
	"github.com/reusee/bf/configs"
	"github.com/reusee/bf/logs"
)

//go:embed schema.cue
var Schema string

var configFlags = cmds.Collect[string]("-config")

func init() {
	cmds.Define("-schema", cmds.Func(func() {
		os.Stdout.WriteString(Schema)
		os.Exit(0)
	}).Desc("print the config schema"))
}

// ConfigFiles are loaded before the searched bf.cue files, so they take precedence.
type ConfigFiles []string

func (Module) ConfigFiles() ConfigFiles {
	return *configFlags
}

func (Module) ConfigsLoader(
	logger logs.Logger,
	files ConfigFiles,
) configs.Loader {

	paths := append([]string(nil), files...)
	defer func() {
		if len(paths) > 0 {
			logger.Info("config file",
				"paths", paths,
			)
		}
	}()

	filenames := []string{
		"bf.cue",
		".bf.cue",
	}

	// working directory
	workingDir, err := os.Getwd()
	if err == nil {
		for _, filename := range filenames {
			path := filepath.Join(workingDir, filename)
			_, err := os.Stat(path)
			if err == nil {
				paths = append(paths, path)
			}
		}
	}

	// user config dir
	configDir, err := os.UserConfigDir()
	if err == nil {
		for _, filename := range filenames {
			path := filepath.Join(configDir, filename)
			_, err := os.Stat(path)
			if err == nil {
				paths = append(paths, path)
			}
		}
	}

	// system wide dir
	for _, filename := range filenames {
		path := filepath.Join("/etc", filename)
		if _, err := os.Stat(path); err == nil {
			paths = append(paths, path)
		}
	}

	return configs.NewLoader(paths, Schema)
}
