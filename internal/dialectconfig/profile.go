package dialectconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvOverride is the environment variable that, when set, names a YAML
// file overriding the built-in profile's fields for the selected
// manufacturer.
const EnvOverride = "WALLPAD_DIALECT_CONFIG"

// Profile holds one manufacturer dialect's wire constants.
type Profile struct {
	// Manufacturer is the CLI -m/--manufacturer id this profile answers to.
	Manufacturer string `yaml:"manufacturer"`

	Prefix         byte `yaml:"prefix"`
	Suffix         byte `yaml:"suffix"`
	BaudRate       int  `yaml:"baud_rate"`
	MinFrameLength int  `yaml:"min_frame_length"`
}

// builtins maps a manufacturer id to its built-in default profile. The
// list of dialects is closed and small: see the Codec's dialect
// polymorphism note.
var builtins = map[string]Profile{
	"hyundai_ht": {
		Manufacturer:   "hyundai_ht",
		Prefix:         0xF7,
		Suffix:         0xEE,
		BaudRate:       9600,
		MinFrameLength: 9,
	},
}

// ErrUnknownManufacturer is returned by Load for a manufacturer id with no
// built-in profile.
var ErrUnknownManufacturer = fmt.Errorf("dialectconfig: unknown manufacturer")

// Load resolves manufacturer to its built-in Profile, then applies any
// override named by the WALLPAD_DIALECT_CONFIG environment variable. A
// missing environment variable is not an error - normal operation never
// requires a config file to exist.
func Load(manufacturer string) (Profile, error) {
	profile, ok := builtins[manufacturer]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownManufacturer, manufacturer)
	}

	path := os.Getenv(EnvOverride)
	if path == "" {
		return profile, nil
	}

	overridden, err := applyOverride(profile, path)
	if err != nil {
		return Profile{}, fmt.Errorf("dialectconfig: loading override %s: %w", path, err)
	}
	return overridden, nil
}

// applyOverride reads path as YAML and merges any fields it sets onto
// profile. Fields the override file omits keep the built-in default -
// this is a partial override, not a replacement document.
func applyOverride(profile Profile, path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, err
	}

	var override struct {
		Prefix         *byte `yaml:"prefix"`
		Suffix         *byte `yaml:"suffix"`
		BaudRate       *int  `yaml:"baud_rate"`
		MinFrameLength *int  `yaml:"min_frame_length"`
	}
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Profile{}, err
	}

	if override.Prefix != nil {
		profile.Prefix = *override.Prefix
	}
	if override.Suffix != nil {
		profile.Suffix = *override.Suffix
	}
	if override.BaudRate != nil {
		profile.BaudRate = *override.BaudRate
	}
	if override.MinFrameLength != nil {
		profile.MinFrameLength = *override.MinFrameLength
	}

	return profile, nil
}
