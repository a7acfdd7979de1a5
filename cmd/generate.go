package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"webwright/pkg/buildcheck"
	"webwright/pkg/config"
	"webwright/pkg/llm"
	"webwright/pkg/orchestration"
	"webwright/pkg/utils"
)

var (
	generateDirFlag          string
	generateModelFlag        string
	generateBuildCommandFlag string
	generateMaxCyclesFlag    int
	generateSkipBuildFlag    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [requirement]",
	Short: "Generate a web app from a requirement and repair it until it builds",
	Long: `Asks the configured LLM for the source files of a small web app,
writes them into the target directory, then runs the validate/fix/build
loop until the project builds cleanly or the repair budget is exhausted.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		requirement := args[0]

		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		applyGenerateFlags(cfg)

		client, err := llm.NewClient(cfg)
		if err != nil {
			log.Fatalf("Failed to create LLM client: %v", err)
		}

		var builder buildcheck.Runner = buildcheck.NewCommandRunner(cfg.BuildCommand)
		if generateSkipBuildFlag {
			builder = nil
		}

		session, err := orchestration.NewSession(cfg, client, builder)
		if err != nil {
			log.Fatalf("Failed to start session: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		logger := utils.GetLogger()
		logger.LogProcessStep(fmt.Sprintf("Generating app for: %s", utils.TruncateString(requirement, 120)))
		startTime := time.Now()

		result, err := session.Generate(ctx, requirement, generateDirFlag)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Fatalf("Generation cancelled")
			}
			log.Fatalf("Generation failed: %v", err)
		}

		fmt.Println(result.Report())
		fmt.Printf("Finished in %s\n", time.Since(startTime).Round(time.Millisecond))
		if result.State != orchestration.StateDone {
			os.Exit(1)
		}
	},
}

func applyGenerateFlags(cfg *config.Config) {
	if generateModelFlag != "" {
		cfg.GenerationModel = generateModelFlag
	}
	if generateBuildCommandFlag != "" {
		cfg.BuildCommand = generateBuildCommandFlag
	}
	if generateMaxCyclesFlag > 0 {
		cfg.MaxCycles = generateMaxCyclesFlag
	}
}

func init() {
	generateCmd.Flags().StringVarP(&generateDirFlag, "dir", "d", ".", "Target directory for the generated app")
	generateCmd.Flags().StringVarP(&generateModelFlag, "model", "m", "", "Model name to use with the LLM (e.g. ollama:qwen2.5-coder:14b)")
	generateCmd.Flags().StringVar(&generateBuildCommandFlag, "build-command", "", "Command used to verify the project builds")
	generateCmd.Flags().IntVar(&generateMaxCyclesFlag, "max-cycles", 0, "Maximum repair cycles before giving up")
	generateCmd.Flags().BoolVar(&generateSkipBuildFlag, "skip-build", false, "Skip the build step; only validate and fix")
}
