package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/diagramkit/internal/config"
	"github.com/matzehuels/diagramkit/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local result cache",
	}

	cmd.AddCommand(c.cacheClearCommand(), c.cachePathCommand(), c.cacheInfoCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached analysis, layout and artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return err
			}

			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			count := countFiles(dir)
			if err := fc.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return err
			}
			fmt.Println(dir)
			return nil
		},
	}
}

func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the cache backend, directory and size",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return err
			}
			files, size := dirUsage(dir)
			printKeyValue("Backend", c.Config.Cache.Backend)
			printKeyValue("Directory", dir)
			printKeyValue("Entries", fmt.Sprint(files))
			printKeyValue("Size", formatBytes(size))
			return nil
		},
	}
}

// cacheDir returns the file cache directory from the configuration.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Backend != config.BackendFile {
		printWarning("Cache backend is %q; the file cache is not in use", c.Config.Cache.Backend)
	}
	dir := c.Config.Cache.Dir
	if dir == "" {
		dir = config.DefaultCacheDir()
	}
	if dir == "" {
		return "", fmt.Errorf("no cache directory: set cache.dir or XDG_CACHE_HOME")
	}
	return dir, nil
}

// countFiles counts regular files below dir.
func countFiles(dir string) int {
	n, _ := dirUsage(dir)
	return n
}

// dirUsage returns the number and total size of regular files below dir.
// A missing dir reports zero.
func dirUsage(dir string) (files int, size int64) {
	_ = filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		files++
		if info, err := d.Info(); err == nil {
			size += info.Size()
		}
		return nil
	})
	return files, size
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
