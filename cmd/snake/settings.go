package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	Long: `Settings live in ~/.snake/settings.yaml unless --settings is given.

Keys: ` + strings.Join(config.Keys(), ", ") + `

Examples:
  snake settings show
  snake settings set speed fast
  snake settings set sound false`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	Run:   runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	Run:   runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

func runSettingsShow(_ *cobra.Command, _ []string) {
	s := loadSettings()
	if s.Token != "" {
		s.Token = "********"
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("# %s\n", config.WritePath(flagSettings))
	fmt.Print(string(data))
}

func runSettingsSet(_ *cobra.Command, args []string) {
	s := loadSettings()
	if err := s.Set(args[0], args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !saveSettings(s) {
		os.Exit(1)
	}
	fmt.Printf("%s = %s\n", args[0], args[1])
}
