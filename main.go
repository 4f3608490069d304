// doxygen-converter rewrites comment-style doxygen annotations above
// function, class and module definitions into docstring blocks inside the
// definition body.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/t-bowcock/doxygen-converter/internal/config"
	"github.com/t-bowcock/doxygen-converter/internal/convert"
	"github.com/t-bowcock/doxygen-converter/internal/discover"
	"github.com/t-bowcock/doxygen-converter/internal/fileio"
	"github.com/t-bowcock/doxygen-converter/internal/preview"
)

var version = "dev"

var (
	newFile    bool
	showDiff   bool
	jobs       int
	configPath string
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "doxygen-converter <path>...",
	Short: "Rewrite comment doxygen annotations as docstring doxygen",
	Long: `doxygen-converter moves "## @brief" and "## @package" annotation
blocks from above a definition into a docstring inside it. Paths may be
files or directories; directories are searched recursively for convertible
files. By default files are overwritten in place.`,
	Args:          cobra.MinimumNArgs(1),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewDevelopmentConfig()
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		defer func() { _ = logger.Sync() }()
		cfg, err := config.LoadOrDefault(configPath)
		if err != nil {
			return err
		}
		opts := options{newFile: newFile, diff: showDiff, jobs: jobs}
		return run(args, cfg, opts, cmd.OutOrStdout(), logger)
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&newFile, "new", "n", false, "write results to a converted_ sibling file instead of overwriting")
	rootCmd.Flags().BoolVarP(&showDiff, "diff", "d", false, "print a unified diff of what would change without writing")
	rootCmd.Flags().IntVarP(&jobs, "jobs", "j", 1, "number of files to process concurrently")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default "+config.DefaultPath+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	newFile bool
	diff    bool
	jobs    int
}

// run converts every file reachable from paths, in argument order. The
// first error stops the batch: the group context is cancelled and files
// not yet started are skipped.
func run(paths []string, cfg *config.Config, opts options, stdout io.Writer, log *zap.Logger) error {
	files, err := collectFiles(paths, cfg)
	if err != nil {
		return err
	}

	jobs := opts.jobs
	if jobs < 1 {
		jobs = 1
	}

	var mu sync.Mutex // serializes diff output
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(jobs)
	for _, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return convertFile(path, cfg, opts, &mu, stdout, log)
		})
	}
	return g.Wait()
}

// collectFiles expands each argument into convertible files. A file
// argument must carry a convertible extension; a directory is searched
// recursively.
func collectFiles(paths []string, cfg *config.Config) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		switch {
		case info.IsDir():
			found, err := discover.Files(path, cfg.Extensions, cfg.SkipDirs)
			if err != nil {
				return nil, fmt.Errorf("discovering files in %s: %w", path, err)
			}
			files = append(files, found...)
		case info.Mode().IsRegular():
			if !discover.HasExtension(path, cfg.Extensions) {
				return nil, fmt.Errorf("%s: not a convertible source file", path)
			}
			files = append(files, path)
		default:
			return nil, fmt.Errorf("%s: not a file or directory", path)
		}
	}
	return files, nil
}

func convertFile(path string, cfg *config.Config, opts options, mu *sync.Mutex, stdout io.Writer, log *zap.Logger) error {
	lines, err := fileio.ReadLines(path)
	if err != nil {
		return err
	}

	res, err := convert.Relocate(lines, convert.Options{Indent: cfg.IndentUnit()})
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if res.Dropped > 0 {
		log.Warn("discarding annotation block with no definition",
			zap.String("file", path), zap.Int("lines", res.Dropped))
	}
	log.Debug("converted",
		zap.String("file", path), zap.Int("blocks", res.Blocks))

	if opts.diff {
		text, err := preview.Unified(path, lines, res.Lines)
		if err != nil {
			return fmt.Errorf("%s: diff: %w", path, err)
		}
		if text != "" {
			mu.Lock()
			_, _ = fmt.Fprint(stdout, text)
			mu.Unlock()
		}
		return nil
	}

	outPath := path
	if opts.newFile {
		outPath = fileio.SiblingPath(path, cfg.NewFilePrefix)
	}
	if err := fileio.WriteLines(outPath, res.Lines); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return nil
}
