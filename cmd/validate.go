package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"webwright/pkg/buildcheck"
	"webwright/pkg/config"
	"webwright/pkg/filesystem"
	"webwright/pkg/orchestration"
)

var (
	validateFixFlag       bool
	validateMaxCyclesFlag int
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Validate (and optionally repair) an existing generated project",
	Long: `Loads the project files from a directory and runs the same
validate/fix/build loop the generator uses. Without --fix the project is
checked and reported but never modified.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		if validateMaxCyclesFlag > 0 {
			cfg.MaxCycles = validateMaxCyclesFlag
		}

		set, err := filesystem.LoadSet(dir)
		if err != nil {
			log.Fatalf("Failed to load project from %s: %v", dir, err)
		}
		if set.Len() == 0 {
			log.Fatalf("No project files found in %s", dir)
		}

		var builder buildcheck.Runner
		if validateFixFlag {
			builder = buildcheck.NewCommandRunner(cfg.BuildCommand)
		}

		session, err := orchestration.NewSession(cfg, nil, builder)
		if err != nil {
			log.Fatalf("Failed to start session: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		var result *orchestration.Result
		if validateFixFlag {
			result, err = session.RepairFileSet(ctx, set, dir)
		} else {
			result, err = session.Inspect(ctx, set)
		}
		if err != nil {
			log.Fatalf("Validation failed: %v", err)
		}

		fmt.Println(result.Report())
		if result.State != orchestration.StateDone {
			os.Exit(1)
		}
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateFixFlag, "fix", false, "Apply fixes and rerun the build instead of only reporting")
	validateCmd.Flags().IntVar(&validateMaxCyclesFlag, "max-cycles", 0, "Maximum repair cycles when --fix is set")
}
