package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"go-kiezmap/logger"
	"go-kiezmap/types"
)

const profileEnv = "CITY_PROFILE_YAML"

//go:embed profile.yaml
var defaultProfileYAML []byte

// Profile is everything that ties the dashboard to one city and one edition of its crime statistics.
type Profile struct {
	City      string       `yaml:"city"`
	Center    types.LatLng `yaml:"center"`
	Zoom      int          `yaml:"zoom"`
	Districts []string     `yaml:"districts"`

	Crime struct {
		File            string     `yaml:"file"`
		Sheet           string     `yaml:"sheet"`
		SkipRows        int        `yaml:"skip_rows"`
		Legend          string     `yaml:"legend"`
		DistrictHeaders [][]string `yaml:"district_headers"`
		TotalHeaders    [][]string `yaml:"total_headers"`
	} `yaml:"crime"`

	Boundaries struct {
		URL          string `yaml:"url"`
		NameProperty string `yaml:"name_property"`
	} `yaml:"boundaries"`

	Places struct {
		RadiusM    int               `yaml:"radius_m"`
		SearchLink string            `yaml:"search_link"`
		Tags       map[string]string `yaml:"tags"`
	} `yaml:"places"`

	Currency struct {
		Base     string  `yaml:"base"`
		Target   string  `yaml:"target"`
		Fallback float64 `yaml:"fallback"`
	} `yaml:"currency"`

	Weather struct {
		FallbackTemperature float64 `yaml:"fallback_temperature"`
		FallbackCode        int     `yaml:"fallback_code"`
	} `yaml:"weather"`
}

// DefaultProfile returns the embedded Berlin profile.
func DefaultProfile() Profile {
	p, err := parseProfile(defaultProfileYAML)
	if err != nil {
		// embedded file is part of the build
		panic(fmt.Sprintf("embedded profile invalid: %v", err))
	}
	return p
}

// LoadProfile reads the profile named by CITY_PROFILE_YAML, falling back to the embedded
// one when the variable is unset or the file is unusable.
func LoadProfile(log *logger.Logger) Profile {
	path := strings.TrimSpace(os.Getenv(profileEnv))
	if path == "" {
		return DefaultProfile()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warn("city profile unreadable, using embedded default", "path", path, "error", err)
		return DefaultProfile()
	}
	p, err := parseProfile(raw)
	if err != nil {
		log.Warn("city profile invalid, using embedded default", "path", path, "error", err)
		return DefaultProfile()
	}
	log.Info("loaded city profile", "path", path, "city", p.City)
	return p
}

func parseProfile(raw []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	if err := p.validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (p *Profile) validate() error {
	if strings.TrimSpace(p.City) == "" {
		return fmt.Errorf("profile: city is required")
	}
	if len(p.Districts) == 0 {
		return fmt.Errorf("profile: districts must not be empty")
	}
	if len(p.Crime.DistrictHeaders) == 0 || len(p.Crime.TotalHeaders) == 0 {
		return fmt.Errorf("profile: crime header candidates are required")
	}
	if p.Crime.SkipRows < 0 {
		return fmt.Errorf("profile: crime.skip_rows must be >= 0")
	}
	if p.Zoom == 0 {
		p.Zoom = 13
	}
	if p.Places.RadiusM <= 0 {
		p.Places.RadiusM = 3000
	}
	if p.Boundaries.NameProperty == "" {
		p.Boundaries.NameProperty = "name"
	}
	return nil
}
