package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillet-ai/skillet/pkg/presenter"
	"github.com/skillet-ai/skillet/pkg/skills"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Inspect available skills",
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered skills",
	Long:  `List the skills found in the skills directory: their names and descriptions, without loading any skill bodies.`,
	Run: func(cmd *cobra.Command, _ []string) {
		config, err := loadConfigWithoutCredentials()
		if err != nil {
			presenter.Error(err, "failed to load configuration")
			os.Exit(1)
		}

		discovery, err := skills.NewDiscovery(skills.WithSkillsDir(config.SkillsDir))
		if err != nil {
			presenter.Error(err, "failed to set up skill discovery")
			os.Exit(1)
		}

		discovered, err := discovery.DiscoverSkills(cmd.Context())
		if err != nil {
			presenter.Error(err, "failed to discover skills")
			os.Exit(1)
		}

		if len(discovered) == 0 {
			presenter.Info(fmt.Sprintf("no skills found in %s", config.SkillsDir))
			return
		}

		presenter.Section(fmt.Sprintf("skills in %s", config.SkillsDir))
		for _, skill := range discovered {
			fmt.Printf("  %-24s %s\n", skill.Name, skill.Description)
		}
	},
}

func init() {
	skillCmd.AddCommand(skillListCmd)
}
