package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/web"
)

var outputDir string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the page as static files",
	Long: `build renders the page once to index.html and copies the static assets
next to it. The exported page has no contact form, counts no visits and
filters projects in the browser.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		index := filepath.Join(outputDir, "index.html")
		f, err := os.Create(index)
		if err != nil {
			return fmt.Errorf("creating %s: %w", index, err)
		}
		if err := a.server.RenderPage(f); err != nil {
			f.Close()
			return fmt.Errorf("rendering page: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("writing %s: %w", index, err)
		}

		n, err := copyStatic(web.StaticFiles(), filepath.Join(outputDir, "static"))
		if err != nil {
			return err
		}

		logger.Info("static export complete", zap.String("output", outputDir), zap.Int("assets", n))
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&outputDir, "output", "o", "dist", "output directory")
	rootCmd.AddCommand(buildCmd)
}

// copyStatic writes every file of src under dst and returns how many it
// wrote.
func copyStatic(src fs.FS, dst string) (int, error) {
	count := 0
	err := fs.WalkDir(src, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dst, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := fs.ReadFile(src, path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("copying static assets: %w", err)
	}
	return count, nil
}
