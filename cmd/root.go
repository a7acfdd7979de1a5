package cmd

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "webwright",
	Short: "LLM-driven web app generator with self-repairing builds",
	Long: `Webwright turns a one-line requirement into a small working web app.
It asks a Large Language Model for the source files, writes them to disk,
then validates, fixes, and builds the project in a loop until the build
passes or the repair budget runs out.

Available commands:
  generate - Generate a web app from a requirement and repair it until it builds
  validate - Validate (and optionally repair) an existing generated project
  version  - Print version information

Try: webwright generate "a todo list with filters" --dir ./todo-app`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
}
