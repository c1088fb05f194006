package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// ProfilesConfig holds all named connection profiles and tracks which
// one is active.
type ProfilesConfig struct {
	Active   string             `toml:"active"`
	Profiles map[string]Profile `toml:"profiles"`
}

// Profile is a named set of connection endpoints.
type Profile struct {
	RegistryURL string `toml:"registry_url"`
	NATSURL     string `toml:"nats_url,omitempty"`
}

func profileConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".local", "state", "db2src")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "profiles.toml"), nil
}

func loadProfilesConfig() (ProfilesConfig, error) {
	path, err := profileConfigPath()
	if err != nil {
		return ProfilesConfig{}, err
	}
	var pc ProfilesConfig
	if _, err := toml.DecodeFile(path, &pc); err != nil {
		if os.IsNotExist(err) {
			return ProfilesConfig{Profiles: map[string]Profile{}}, nil
		}
		return ProfilesConfig{}, err
	}
	if pc.Profiles == nil {
		pc.Profiles = map[string]Profile{}
	}
	return pc, nil
}

func saveProfilesConfig(pc ProfilesConfig) error {
	path, err := profileConfigPath()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(pc)
}

// Cached active profile values, loaded once per process.
var (
	profileOnce       sync.Once
	cachedRegistryURL string
	cachedNATSURL     string
)

func loadActiveProfileOnce() {
	profileOnce.Do(func() {
		pc, err := loadProfilesConfig()
		if err != nil || pc.Active == "" {
			return
		}
		p, ok := pc.Profiles[pc.Active]
		if !ok {
			return
		}
		cachedRegistryURL = p.RegistryURL
		cachedNATSURL = p.NATSURL
	})
}

func activeProfileRegistryURL() string {
	loadActiveProfileOnce()
	return cachedRegistryURL
}

func activeProfileNATSURL() string {
	loadActiveProfileOnce()
	return cachedNATSURL
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage named connection profiles",
}

var profileAddCmd = &cobra.Command{
	Use:   "add <name> <registry-url>",
	Short: "Add or replace a connection profile",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		nats, _ := cmd.Flags().GetString("nats")
		pc, err := loadProfilesConfig()
		if err != nil {
			return err
		}
		pc.Profiles[args[0]] = Profile{RegistryURL: args[1], NATSURL: nats}
		if pc.Active == "" {
			pc.Active = args[0]
		}
		return saveProfilesConfig(pc)
	},
}

var profileUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the active profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pc, err := loadProfilesConfig()
		if err != nil {
			return err
		}
		if _, ok := pc.Profiles[args[0]]; !ok {
			return fmt.Errorf("no profile named %q", args[0])
		}
		pc.Active = args[0]
		return saveProfilesConfig(pc)
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List connection profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		pc, err := loadProfilesConfig()
		if err != nil {
			return err
		}
		names := make([]string, 0, len(pc.Profiles))
		for name := range pc.Profiles {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			marker := "  "
			if name == pc.Active {
				marker = "* "
			}
			fmt.Printf("%s%s\t%s\n", marker, name, pc.Profiles[name].RegistryURL)
		}
		return nil
	},
}

var profileRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a connection profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pc, err := loadProfilesConfig()
		if err != nil {
			return err
		}
		if _, ok := pc.Profiles[args[0]]; !ok {
			return fmt.Errorf("no profile named %q", args[0])
		}
		delete(pc.Profiles, args[0])
		if pc.Active == args[0] {
			pc.Active = ""
		}
		return saveProfilesConfig(pc)
	},
}

func init() {
	profileAddCmd.Flags().String("nats", "", "NATS URL for this profile")
	profileCmd.AddCommand(profileAddCmd)
	profileCmd.AddCommand(profileUseCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileRemoveCmd)
}
