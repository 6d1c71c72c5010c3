package tui

import (
	"github.com/1broseidon/subcover/internal/config"
	"github.com/1broseidon/subcover/internal/settings"
)

// saveAppearance writes the appearance of s into the config file, keeping
// every other setting as it is on disk. It returns the path written.
func saveAppearance(configPath string, s settings.Settings) (string, error) {
	var (
		res *config.LoadResult
		err error
	)
	if configPath == "" {
		res, err = config.LoadWithSources()
	} else {
		res, err = config.LoadFromPath(configPath)
	}
	if err != nil {
		return "", err
	}

	res.Config.SetAppearance(s)
	if err := res.Config.SaveTo(res.Path); err != nil {
		return "", err
	}
	return res.Path, nil
}
