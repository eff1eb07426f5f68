package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/JonMunkholm/migdash/internal/chart"
	"github.com/JonMunkholm/migdash/internal/core"
)

// PanelsFile represents the optional TOML file that overrides the indicator
// panels:
//
//	[panels.gdp]
//	title = "GDP per capita"
//	y-title = "US Dollars"
//	y-range = [0.0, 150000.0]
type PanelsFile struct {
	Panels map[string]PanelOverride `toml:"panels"`
}

// PanelOverride maps the per-panel settings. Unset fields keep the default.
type PanelOverride struct {
	Title  *string    `toml:"title"`
	YTitle *string    `toml:"y-title"`
	YRange *[]float64 `toml:"y-range"`
	Legend *bool      `toml:"legend"`
}

// LoadPanels reads a TOML panels file from the given path. Missing file is not an error.
func LoadPanels(path string) (PanelsFile, error) {
	if path == "" {
		return PanelsFile{}, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return PanelsFile{}, nil
		}
		return PanelsFile{}, fmt.Errorf("failed to stat panels file: %w", err)
	}
	var pf PanelsFile
	if _, err := toml.DecodeFile(path, &pf); err != nil {
		return PanelsFile{}, fmt.Errorf("failed to decode panels file: %w", err)
	}
	return pf, nil
}

// Apply merges the overrides into panels. Unknown panel keys and malformed
// ranges are errors.
func (pf PanelsFile) Apply(panels map[core.Indicator]core.PanelSpec) error {
	for key, o := range pf.Panels {
		ind, err := core.ParseIndicator(key)
		if err != nil {
			return fmt.Errorf("panels file: %w", err)
		}
		spec, ok := panels[ind]
		if !ok {
			return fmt.Errorf("panels file: %q is not an indicator panel", key)
		}

		if o.Title != nil {
			spec.Title = *o.Title
		}
		if o.YTitle != nil {
			spec.YTitle = *o.YTitle
		}
		if o.Legend != nil {
			spec.Legend = *o.Legend
		}
		if o.YRange != nil {
			r := *o.YRange
			if len(r) != 2 || r[0] >= r[1] {
				return fmt.Errorf("panels file: %s y-range must be [low, high], got %v", key, r)
			}
			spec.YRange = chart.Range{From: r[0], To: r[1]}
		}
		panels[ind] = spec
	}
	return nil
}

// Options builds the view options from the dashboard settings and the
// panels file.
func (c *Config) Options(pf PanelsFile) (core.Options, error) {
	opts := core.DefaultOptions()
	opts.YearMin = c.Dashboard.YearMin
	opts.YearMax = c.Dashboard.YearMax
	opts.DefaultCountry = c.Dashboard.DefaultCountry
	opts.DefaultYear = c.Dashboard.DefaultYear
	opts.DynamicAxes = c.Dashboard.DynamicAxes

	if err := pf.Apply(opts.Panels); err != nil {
		return core.Options{}, err
	}
	return opts, nil
}
