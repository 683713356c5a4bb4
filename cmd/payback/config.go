// ABOUTME: CLI commands for viewing and editing payback configuration.
// ABOUTME: Covers the body profile, storage backend, and data directory.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/payback/internal/config"
	"github.com/harperreed/payback/internal/engine"
	"github.com/harperreed/payback/internal/models"
	"github.com/spf13/cobra"
)

var (
	cfgWeight    float64
	cfgHeight    float64
	cfgAge       int
	cfgSex       string
	cfgReference string
	cfgDefaultEx string
	cfgBackend   string
	cfgDataDir   string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long: `Show the current configuration: storage backend, data directory, and
the body profile that drives the kcal-to-minutes conversion.

Use 'payback config set' to change values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Config:   %s\n", config.GetConfigPath())
		fmt.Printf("Backend:  %s\n", cfg.GetBackend())
		fmt.Printf("Data dir: %s\n", cfg.GetDataDir())
		fmt.Println()

		p := cfg.GetProfile()
		fmt.Printf("Profile:  %.1f kg, %.0f cm, %d years, %s\n",
			p.WeightKg, p.HeightCm, p.AgeYears, p.Sex)
		fmt.Printf("Reference exercise: %s (MET %.1f)\n",
			p.Reference(), models.ActivityFor(p.Reference()).MET)
		if p.DefaultExercise != "" {
			fmt.Printf("Default exercise:   %s\n", p.DefaultExercise)
		}
		fmt.Println()
		fmt.Printf("BMR: %.0f kcal/day → one 350ml hazy IPA costs %d min of %s\n",
			engine.BMR(p),
			engine.KcalToMinutes(models.StyleKcal("hazy_ipa", models.DefaultServingKey, 1), p.Reference(), p),
			models.ActivityFor(p.Reference()).Label)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update configuration",
	Long: `Update configuration values. Only the flags you pass are changed.

The profile feeds the Ganpule basal-rate formula, so weight, height,
age, and sex all change how many minutes a drink costs.

EXAMPLES:

  payback config set --weight 58.5
  payback config set --weight 72 --height 180 --age 35 --sex male
  payback config set --reference running       # Price debt in run minutes
  payback config set --default-exercise yoga   # Default for 'payback exercise'
  payback config set --backend charm           # Enable Charm Cloud sync`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := cfg.GetProfile()
		changed := false

		if cmd.Flags().Changed("weight") {
			p.WeightKg = cfgWeight
			changed = true
		}
		if cmd.Flags().Changed("height") {
			p.HeightCm = cfgHeight
			changed = true
		}
		if cmd.Flags().Changed("age") {
			p.AgeYears = cfgAge
			changed = true
		}
		if cmd.Flags().Changed("sex") {
			p.Sex = models.Sex(cfgSex)
			changed = true
		}
		if cmd.Flags().Changed("reference") {
			if !models.IsValidExerciseKey(cfgReference) {
				return fmt.Errorf("unknown exercise: %s", cfgReference)
			}
			p.ReferenceExercise = cfgReference
			changed = true
		}
		if cmd.Flags().Changed("default-exercise") {
			if !models.IsValidExerciseKey(cfgDefaultEx) {
				return fmt.Errorf("unknown exercise: %s", cfgDefaultEx)
			}
			p.DefaultExercise = cfgDefaultEx
			changed = true
		}

		if changed {
			if err := p.Validate(); err != nil {
				return err
			}
			cfg.SetProfile(p)
		}

		if cmd.Flags().Changed("backend") {
			if cfgBackend != "sqlite" && cfgBackend != "charm" {
				return fmt.Errorf("unknown backend: %s (use sqlite or charm)", cfgBackend)
			}
			cfg.Backend = cfgBackend
			changed = true
		}
		if cmd.Flags().Changed("data-dir") {
			cfg.DataDir = cfgDataDir
			changed = true
		}

		if !changed {
			fmt.Println("Nothing to change. Run 'payback config set --help' for flags.")
			return nil
		}

		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		color.Green("✓ Config saved")
		return nil
	},
}

func init() {
	configSetCmd.Flags().Float64Var(&cfgWeight, "weight", 0, "weight in kg")
	configSetCmd.Flags().Float64Var(&cfgHeight, "height", 0, "height in cm")
	configSetCmd.Flags().IntVar(&cfgAge, "age", 0, "age in years")
	configSetCmd.Flags().StringVar(&cfgSex, "sex", "", "sex (male or female)")
	configSetCmd.Flags().StringVar(&cfgReference, "reference", "", "reference exercise for the balance unit")
	configSetCmd.Flags().StringVar(&cfgDefaultEx, "default-exercise", "", "default exercise for 'payback exercise'")
	configSetCmd.Flags().StringVar(&cfgBackend, "backend", "", "storage backend (sqlite or charm)")
	configSetCmd.Flags().StringVar(&cfgDataDir, "data-dir", "", "data directory for the sqlite backend")

	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
