package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	chisel "github.com/iw2rmb/chisel"
	"github.com/iw2rmb/chisel/editor"
	"github.com/iw2rmb/chisel/expr"
)

var versionString = chisel.Version()

var themePath string

var rootCmd = &cobra.Command{
	Use:   "chisel",
	Short: "Structural code editor demo",
	Long: `Chisel edits expression trees through their rendered token stream:
every keystroke is a tree transformation, so the document can never be
syntactically broken. The root command opens an interactive demo document.`,
	Run: func(cmd *cobra.Command, args []string) {
		theme, err := loadTheme(themePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "theme %s: %v (using defaults)\n", themePath, err)
		}
		p := tea.NewProgram(newModel(theme), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Drive the edit engine from line input",
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runRepl())
	},
}

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Dump the sample document's token stream",
	Run: func(cmd *cobra.Command, args []string) {
		g := expr.NewGen()
		e := editor.NewEngine(editor.Config{IDs: g, Params: catalogParams})
		tree := sampleTree(g)
		fmt.Println(e.Stream(tree).Text())
		fmt.Println()
		fmt.Println(e.Stream(tree).DebugString())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the chisel version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("chisel %s\n", chisel.VersionTag())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&themePath, "theme", "", "path to a YAML theme file")
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
