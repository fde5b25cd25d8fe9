package workflow

import (
	"os"
	"path/filepath"
	"strings"

	vlog "github.com/arjun-christopher/fsbuild/internal/log"
)

// FixLauncherIcons removes the mipmap resource directories (which ship
// corrupted PNGs) and rewrites the widget layout to reference the drawable
// launcher icon instead. Best-effort pre-build fixup; a missing project tree
// is not a failure.
func (c *Controller) FixLauncherIcons() error {
	resDir := filepath.Join(c.Cfg.ProjectDir, "android", "app", "src", "main", "res")
	if _, err := os.Stat(resDir); err != nil {
		return err
	}

	c.Display.Step("Fixing Launcher Icons")

	mipmaps, err := filepath.Glob(filepath.Join(resDir, "mipmap-*"))
	if err == nil {
		for _, dir := range mipmaps {
			info, statErr := os.Stat(dir)
			if statErr != nil || !info.IsDir() {
				continue
			}
			c.Display.Plain("Removing " + filepath.Base(dir) + "...")
			if rmErr := os.RemoveAll(dir); rmErr != nil {
				vlog.Warn("removing mipmap dir", "dir", dir, "err", rmErr)
			}
		}
	}

	if err := rewriteIconReference(filepath.Join(resDir, "layout", "expense_widget.xml"), c); err != nil {
		return err
	}

	c.Display.Success("Launcher icons fixed")
	return nil
}

// rewriteIconReference swaps the mipmap icon reference for the drawable one
// inside the widget layout, if the file exists and still uses the old form.
func rewriteIconReference(layoutPath string, c *Controller) error {
	data, err := os.ReadFile(layoutPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	content := string(data)
	if !strings.Contains(content, "@mipmap/ic_launcher") {
		return nil
	}

	c.Display.Plain("Fixing widget layout icon reference...")
	content = strings.ReplaceAll(content, "@mipmap/ic_launcher", "@drawable/ic_launcher")
	return os.WriteFile(layoutPath, []byte(content), 0o644)
}
