package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ch32-tools/settingsstore/flash"
)

// Profile describes the flash geometry of a target part.
type Profile struct {
	Name      string `yaml:"name"`
	PageSize  uint32 `yaml:"page_size"`
	FlashEnd  uint32 `yaml:"flash_end"`
	FlashSize uint32 `yaml:"flash_size"`
}

// ProfileError reports a geometry that cannot describe a flash array.
type ProfileError struct {
	Name   string
	Reason string
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("profile %s: %s", e.Name, e.Reason)
}

// builtinProfiles are the parts settingsctl knows out of the box.
var builtinProfiles = map[string]Profile{
	"ch32v003": {
		Name:      "ch32v003",
		PageSize:  64,
		FlashEnd:  0x08004000,
		FlashSize: 16 * 1024,
	},
}

// Base returns the first address of the flash array.
func (p Profile) Base() uint32 {
	return p.FlashEnd - p.FlashSize
}

// Layout returns the engine layout for this geometry.
func (p Profile) Layout() flash.Layout {
	return flash.Layout{
		PageSize: p.PageSize,
		EndAddr:  p.FlashEnd,
	}
}

// Validate checks that the geometry can describe a real flash array.
func (p Profile) Validate() error {
	if p.PageSize == 0 || p.PageSize&(p.PageSize-1) != 0 {
		return &ProfileError{Name: p.Name, Reason: fmt.Sprintf("page size %d is not a power of two", p.PageSize)}
	}
	if p.FlashSize == 0 {
		return &ProfileError{Name: p.Name, Reason: "flash size is zero"}
	}
	if p.FlashSize%p.PageSize != 0 {
		return &ProfileError{Name: p.Name, Reason: fmt.Sprintf("flash size %d is not a multiple of the %d-byte page size", p.FlashSize, p.PageSize)}
	}
	if p.FlashEnd < p.FlashSize {
		return &ProfileError{Name: p.Name, Reason: fmt.Sprintf("flash end 0x%08X is below the flash size %d", p.FlashEnd, p.FlashSize)}
	}
	return nil
}

// lookupProfile finds a builtin profile by name.
func lookupProfile(name string) (Profile, error) {
	p, ok := builtinProfiles[name]
	if !ok {
		names := make([]string, 0, len(builtinProfiles))
		for n := range builtinProfiles {
			names = append(names, n)
		}
		sort.Strings(names)
		return Profile{}, fmt.Errorf("unknown profile %q (builtin: %s)", name, strings.Join(names, ", "))
	}
	return p, nil
}

// loadProfile reads and validates a YAML profile file. Numeric fields accept
// hex notation (page_size: 0x40).
func loadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile file: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to parse profile file: %w", err)
	}
	if p.Name == "" {
		p.Name = path
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// resolveProfile picks the geometry for this invocation: a profile file if
// given, a builtin otherwise.
func resolveProfile() (Profile, error) {
	if profileFile != "" {
		return loadProfile(profileFile)
	}
	return lookupProfile(profileName)
}
