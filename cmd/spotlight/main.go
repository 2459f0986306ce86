package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yourusername/spotlight/internal/config"
	"github.com/yourusername/spotlight/internal/logging"
	"github.com/yourusername/spotlight/internal/output"
	"github.com/yourusername/spotlight/internal/state"
	"github.com/yourusername/spotlight/internal/types"
)

var (
	scenePath  string
	statePath  string
	jsonOutput bool
	noColor    bool
	debugMode  bool

	// Color functions
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	keyColor     = color.New(color.FgYellow)
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "spotlight",
	Short: "Spotlight - directional focus navigation for 2D scenes",
	Long: `Spotlight moves focus between rectangles on a 2D surface using arrow-key style
directions, the way a TV or game-console UI does.

A scene file describes the focusable nodes, their rectangles and the containers
grouping them. Focus state is remembered between invocations.`,
	Version:       "0.1.0",
	SilenceErrors: true,
}

// Show command flags
var (
	showASCII   bool
	showUnicode bool
	showNoNames bool
	showWidth   int
	showHeight  int
)

// moveTrace prints the transitions a move produced
var moveTrace bool

type moveStep struct {
	Direction string `json:"direction"`
	Moved     bool   `json:"moved"`
	Focused   string `json:"focused"`
}

type moveReport struct {
	From    string     `json:"from"`
	Focused string     `json:"focused"`
	Steps   []moveStep `json:"steps"`
}

// moveCmd moves focus one step per direction argument
var moveCmd = &cobra.Command{
	Use:   "move <direction>...",
	Short: "Move focus up, down, left or right",
	Long: `Moves focus one step for each direction given, in order.

Example: spotlight move right right down`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dirs := make([]types.Direction, len(args))
		for i, arg := range args {
			dir, ok := types.ParseDirection(arg)
			if !ok {
				return fmt.Errorf("invalid direction %q (use up, down, left or right)", arg)
			}
			dirs[i] = dir
		}

		ss, err := openSession()
		if err != nil {
			return err
		}
		defer ss.nav.Close()

		report := moveReport{From: ss.currentName()}
		start := len(ss.nav.History())
		for _, dir := range dirs {
			moved := ss.nav.Move(dir)
			report.Steps = append(report.Steps, moveStep{
				Direction: dir.String(),
				Moved:     moved,
				Focused:   ss.currentName(),
			})
		}
		report.Focused = ss.currentName()

		if err := ss.save(); err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(report)
		}

		for _, step := range report.Steps {
			if step.Moved {
				successColor.Printf("✓ %s", step.Direction)
				fmt.Printf(" → %s\n", step.Focused)
			} else {
				infoColor.Printf("· %s", step.Direction)
				fmt.Printf(": no target, stayed on %s\n", step.Focused)
			}
		}

		if moveTrace {
			history := ss.nav.History()
			if start > len(history) {
				start = 0
			}
			fmt.Println()
			return output.PrintHistoryTable(os.Stdout, ss.scene, history[start:])
		}
		return nil
	},
}

// focusCmd focuses a node by name
var focusCmd = &cobra.Command{
	Use:   "focus <node>",
	Short: "Focus a node directly",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ss, err := openSession()
		if err != nil {
			return err
		}
		defer ss.nav.Close()

		node, ok := ss.scene.NodeByName(args[0])
		if !ok {
			return fmt.Errorf("unknown node %q", args[0])
		}
		if !ss.nav.Focus(node.ID) {
			return fmt.Errorf("node %q cannot take focus", args[0])
		}
		if err := ss.save(); err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(map[string]string{"focused": ss.currentName()})
		}
		successColor.Printf("✓ Focused %s\n", ss.currentName())
		return nil
	},
}

// enterCmd focuses a container using its enter policy
var enterCmd = &cobra.Command{
	Use:   "enter <container>",
	Short: "Focus a container using its enter policy",
	Long: `Focuses the node a container's enterTo policy selects: the last focused
member, the default element, or the first enabled member.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ss, err := openSession()
		if err != nil {
			return err
		}
		defer ss.nav.Close()

		c, ok := ss.scene.ContainerByName(args[0])
		if !ok {
			return fmt.Errorf("unknown container %q", args[0])
		}
		if !ss.nav.FocusContainer(c.ID) {
			return fmt.Errorf("container %q has no focusable node", args[0])
		}
		if err := ss.save(); err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(map[string]string{"container": c.Name, "focused": ss.currentName()})
		}
		successColor.Printf("✓ Entered %s", c.Name)
		fmt.Printf(" → %s\n", ss.currentName())
		return nil
	},
}

// showCmd draws the scene with the focused node highlighted
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the scene with the focused node highlighted",
	RunE: func(cmd *cobra.Command, args []string) error {
		ss, err := openSession()
		if err != nil {
			return err
		}
		defer ss.nav.Close()

		if jsonOutput {
			return printJSON(map[string]interface{}{
				"focused": ss.currentName(),
				"scene":   config.FromScene(ss.scene, ss.cfg.Settings),
			})
		}

		if err := output.PrintVisualization(os.Stdout, ss.scene, ss.nav.Current(), getVisualizationOptions()); err != nil {
			return err
		}
		return ss.save()
	},
}

// listCmd is the parent command for tabular listings
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List nodes or containers",
}

var listNodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "List nodes with their rects and containers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ss, err := openSession()
		if err != nil {
			return err
		}
		defer ss.nav.Close()

		if jsonOutput {
			return printJSON(ss.scene.Nodes())
		}
		return output.PrintNodesTable(os.Stdout, ss.scene, ss.state)
	},
}

var listContainersCmd = &cobra.Command{
	Use:   "containers",
	Short: "List containers with their policies and remembered focus",
	RunE: func(cmd *cobra.Command, args []string) error {
		ss, err := openSession()
		if err != nil {
			return err
		}
		defer ss.nav.Close()

		if jsonOutput {
			return printJSON(config.FromScene(ss.scene, ss.cfg.Settings).Containers)
		}
		return output.PrintContainersTable(os.Stdout, ss.scene, ss.state)
	},
}

// sceneCmd is the parent command for scene file operations
var sceneCmd = &cobra.Command{
	Use:   "scene",
	Short: "Manage scene files",
}

// sceneValidateCmd validates a scene file
var sceneValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a scene file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := scenePath
		if len(args) > 0 {
			path = args[0]
		}

		cfg, err := config.LoadConfig(path)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		s, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		if jsonOutput {
			return printJSON(map[string]interface{}{
				"valid":      true,
				"nodes":      s.Len(),
				"containers": len(s.Containers()),
			})
		}

		successColor.Println("✓ Scene is valid")
		fmt.Printf("  Nodes: %d\n", s.Len())
		fmt.Printf("  Containers: %d\n", len(s.Containers()))
		if cfg.Settings.InitialFocus != "" {
			fmt.Printf("  Initial Focus: %s\n", cfg.Settings.InitialFocus)
		}

		return nil
	},
}

// sceneExportCmd prints the scene in normalized form
var sceneExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the scene in normalized form",
	Long: `Loads the scene, builds it and writes it back out. Anonymous containers stay
anonymous, and every rect is printed in x,y,width,height form.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(scenePath)
		if err != nil {
			return fmt.Errorf("failed to load scene: %w", err)
		}
		s, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to build scene: %w", err)
		}

		exported := config.FromScene(s, cfg.Settings)
		if jsonOutput {
			return printJSON(exported)
		}

		data, err := yaml.Marshal(exported)
		if err != nil {
			return fmt.Errorf("failed to encode scene: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

// stateCmd is the parent command for state operations
var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Manage saved focus state",
}

// stateShowCmd shows saved focus state
var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show saved focus state",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := state.LoadStateFrom(resolvedStatePath())
		if err != nil {
			return fmt.Errorf("failed to load state: %w", err)
		}

		if jsonOutput {
			return printJSON(snap)
		}

		summary := snap.Summary()
		keyColor.Print("State Version: ")
		fmt.Printf("%v\n", summary["version"])
		keyColor.Print("Last Updated: ")
		fmt.Printf("%v\n", summary["lastUpdated"])
		keyColor.Print("Current: ")
		fmt.Printf("%v\n", summary["current"])
		fmt.Println()

		if len(snap.LastFocused) > 0 {
			keyColor.Println("Last Focused:")
			containers := make([]string, 0, len(snap.LastFocused))
			for name := range snap.LastFocused {
				containers = append(containers, name)
			}
			sort.Strings(containers)
			for _, name := range containers {
				fmt.Printf("  %s: %s\n", name, snap.LastFocused[name])
			}
		}

		return nil
	},
}

// stateResetCmd clears saved focus state
var stateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear saved focus state",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := state.NewSnapshot().SaveTo(resolvedStatePath()); err != nil {
			return fmt.Errorf("failed to save state: %w", err)
		}

		successColor.Println("✓ State has been reset")
		return nil
	},
}

// interactiveCmd navigates the scene with the keyboard
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Navigate the scene with arrow keys",
	Long: `Draws the scene and moves focus with the arrow keys or h/j/k/l.

The scene file is watched while running: edited rects and disabled flags apply
immediately, new nodes are mounted and removed nodes are unmounted.

Keys: arrows or hjkl move, p pauses, t shows history, q quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ss, err := openSession()
		if err != nil {
			return err
		}
		defer ss.nav.Close()

		if err := runInteractive(ss); err != nil {
			return err
		}
		return ss.save()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&scenePath, "scene", "", "Scene file (default ~/.config/spotlight/scene.yaml)")
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "", "Focus state file (default ~/.local/state/spotlight/state.json)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	// Add top-level commands
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(focusCmd)
	rootCmd.AddCommand(enterCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(interactiveCmd)

	rootCmd.AddCommand(listCmd)
	listCmd.AddCommand(listNodesCmd)
	listCmd.AddCommand(listContainersCmd)

	rootCmd.AddCommand(sceneCmd)
	sceneCmd.AddCommand(sceneValidateCmd)
	sceneCmd.AddCommand(sceneExportCmd)

	rootCmd.AddCommand(stateCmd)
	stateCmd.AddCommand(stateShowCmd)
	stateCmd.AddCommand(stateResetCmd)

	moveCmd.Flags().BoolVar(&moveTrace, "trace", false, "Print the focus transitions of this move")

	// Add flags for show and interactive
	for _, cmd := range []*cobra.Command{showCmd, interactiveCmd} {
		cmd.Flags().BoolVar(&showASCII, "ascii", false, "Use ASCII box characters")
		cmd.Flags().BoolVar(&showUnicode, "unicode", false, "Use Unicode box characters")
		cmd.Flags().BoolVar(&showNoNames, "no-names", false, "Hide node names")
		cmd.Flags().IntVar(&showWidth, "width", 0, "Canvas width in characters (default: terminal width)")
		cmd.Flags().IntVar(&showHeight, "height", 0, "Canvas height in characters (default: terminal height)")
	}

	// Disable color if requested, enable debug logging if requested
	cobra.OnInitialize(func() {
		if noColor {
			color.NoColor = true
		}
		if debugMode {
			logging.SetDebug(true)
		}
	})
}

func main() {
	// Initialize logging
	if err := logging.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "warning: logging disabled:", err)
	}
	defer logging.Close()

	if err := rootCmd.Execute(); err != nil {
		logging.Error().Err(err).Msg("command failed")
		printError(err.Error())
		logging.Close()
		os.Exit(1)
	}
}

// Helper functions

func printJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printError(msg string) {
	if noColor {
		fmt.Fprintln(os.Stderr, "Error:", msg)
	} else {
		errorColor.Fprint(os.Stderr, "✗ Error: ")
		fmt.Fprintln(os.Stderr, msg)
	}
}

// getVisualizationOptions builds options from flags
func getVisualizationOptions() output.VisualizationOptions {
	opts := output.DefaultVisualizationOptions()

	// Override with flags if set
	if showASCII {
		opts.UseUnicode = false
	}
	if showUnicode {
		opts.UseUnicode = true
	}
	if showNoNames {
		opts.ShowNames = false
	}
	if showWidth > 0 {
		opts.MaxWidth = showWidth
	}
	if showHeight > 0 {
		opts.MaxHeight = showHeight
	}

	return opts
}
