package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// EditOptions holds the flags shared by commands that rewrite files.
type EditOptions struct {
	Write bool // Rewrite files in place
	Check bool // Fail when a file would change
}

func addEditFlags(cmd *cobra.Command, opts *EditOptions) {
	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Write the result back to each file")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "Exit with an error when a file would change")
	cmd.MarkFlagsMutuallyExclusive("write", "check")
}

// transform rewrites the text of one file.
type transform func(path, text string) (string, error)

// runEdit applies fn to every discovered file. Results are written back,
// checked, or printed to standard output.
func runEdit(cmd *cobra.Command, cmdCtx *CommandContext, args []string, opts *EditOptions, fn transform) error {
	files, err := discoverFiles(cmdCtx.Cfg, args)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	var changed []string
	for _, path := range files {
		text, err := readFile(path)
		if err != nil {
			return err
		}
		result, err := fn(path, text)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if result != text {
			changed = append(changed, path)
		}

		switch {
		case opts.Write:
			if result == text {
				r.StatusLine(path, "skipped", "(unchanged)")
				continue
			}
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(result), info.Mode().Perm()); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			cmdCtx.Logger.Debug("rewrote file", "path", path)
			r.StatusLine(path, "success", "(updated)")
		case opts.Check:
			if result != text {
				r.StatusLine(path, "error", "(would change)")
			}
		default:
			if len(files) > 1 {
				r.Println(r.Styles().ModelPath.Render(path))
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), result)
		}
	}

	if opts.Check && len(changed) > 0 {
		return fmt.Errorf("%d of %d files would change", len(changed), len(files))
	}
	return nil
}
