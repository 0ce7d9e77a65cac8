package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/neurodesk/hamlc/pkg/buildcache"
	"github.com/neurodesk/hamlc/pkg/django"
	"github.com/neurodesk/hamlc/pkg/haml"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	cfg        = defaultConfig()
)

var rootCmd = cobra.Command{
	Use:           "hamlc",
	Short:         "Compile indentation based markup into Django templates",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		explicit := cmd.Flags().Changed("config")
		if err := cfg.loadConfig(configPath, explicit); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", configPath, err)
		}
		level := logLevels[cfg.LogLevel]
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
}

var compileCmd = cobra.Command{
	Use:   "compile [paths...]",
	Short: "Compile source files, or stdin when no path is given",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("check") {
			cfg.CheckOutput, _ = cmd.Flags().GetBool("check")
		}
		output, _ := cmd.Flags().GetString("output")

		if len(args) == 0 {
			return compileStream(cmd.InOrStdin(), cmd.OutOrStdout(), cfg)
		}

		paths, err := collectSources(args, cfg)
		if err != nil {
			return err
		}
		if output != "" && len(paths) != 1 {
			return fmt.Errorf("--output needs exactly one source, got %d", len(paths))
		}
		var cache *buildcache.Cache
		if force, _ := cmd.Flags().GetBool("force"); cfg.CacheDir != "" && !force {
			cache = buildcache.New(cfg.CacheDir)
		}
		return compileFiles(paths, output, cmd.OutOrStdout(), cfg, cache)
	},
}

var treeCmd = cobra.Command{
	Use:   "tree FILE",
	Short: "Print the node tree built from a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := parseFile(args[0])
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			data, err := haml.MarshalTree(root)
			if err != nil {
				return fmt.Errorf("encoding tree: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), haml.Pretty(root))
		return nil
	},
}

var checkCmd = cobra.Command{
	Use:   "check FILE",
	Short: "Compile a source file and verify the emitted template is well formed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := parseFile(args[0])
		if err != nil {
			return err
		}
		doc, err := django.Parse(root.Render())
		if err != nil {
			return fmt.Errorf("%s: emitted template: %w", args[0], err)
		}
		if showAST, _ := cmd.Flags().GetBool("ast"); showAST {
			fmt.Fprint(cmd.OutOrStdout(), django.Pretty(doc))
		}
		slog.Info("template is well formed", "source", args[0])
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "Path to the hamlc.yaml config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	compileCmd.Flags().StringP("output", "o", "", "Write the single compiled source here ('-' for stdout)")
	compileCmd.Flags().Bool("check", true, "Verify the emitted template is well formed")
	compileCmd.Flags().Bool("force", false, "Recompile sources the cache reports as up to date")
	rootCmd.AddCommand(&compileCmd)

	treeCmd.Flags().Bool("json", false, "Print the tree as JSON")
	rootCmd.AddCommand(&treeCmd)

	checkCmd.Flags().Bool("ast", false, "Print the parsed template")
	rootCmd.AddCommand(&checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}
