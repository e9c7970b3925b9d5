package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/ecl/internal/cli"
	"github.com/leapstack-labs/ecl/internal/cli/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// generateCLIDocs writes an index page plus one page per ecl command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	commands := documentedCommands(root)

	if err := os.WriteFile(filepath.Join(outDir, "index.md"), cliIndex(root, commands), 0600); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	log.Printf("  Generated index.md")

	for _, cmd := range commands {
		name := cmd.Name() + ".md"
		if err := os.WriteFile(filepath.Join(outDir, name), commandPage(cmd), 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		log.Printf("  Generated %s", name)
	}
	return nil
}

// documentedCommands returns the visible subcommands of root by name.
func documentedCommands(root *cobra.Command) []*cobra.Command {
	var cmds []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || !cmd.IsAvailableCommand() || cmd.Name() == "help" {
			continue
		}
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })
	return cmds
}

func cliIndex(root *cobra.Command, commands []*cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for ecl")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("ecl validates, inspects and rewrites .editorconfig files from the command line.")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/ecl/cmd/ecl@latest\necl <command> [options]")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range commands {
		link := fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, cleanDescription(cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	writeFlagsTable(w, root.PersistentFlags())

	w.Header(2, "Configuration Precedence")
	w.BulletList([]string{
		"Built-in defaults",
		fmt.Sprintf("%s or %s, searched upward from the working directory", InlineCode("ecl.yaml"), InlineCode(".ecl.yaml")),
		fmt.Sprintf("%s environment variables", InlineCode("ECL_*")),
		"Command-line flags",
	})
	w.Paragraph("See [Configuration](/concepts/configuration) for every key.")

	w.Header(2, "Environment Variables")
	w.Paragraph("Each config key is read from the environment with dots replaced by underscores:")
	w.Table([]string{"Variable", "Config key", "Set by flag"}, envRows(root, commands))

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Success"},
		{InlineCode("1"), "Error, lint issues at or above the threshold, or pending changes under --check"},
	})
	return w.Bytes()
}

// envRows lists the config keys reachable from flags with their
// environment variable names.
func envRows(root *cobra.Command, commands []*cobra.Command) [][]string {
	byKey := map[string][]string{}
	collect := func(flags *pflag.FlagSet) {
		flags.VisitAll(func(f *pflag.Flag) {
			key, ok := config.FlagKey(f.Name)
			if !ok {
				return
			}
			flag := InlineCode("--" + f.Name)
			for _, seen := range byKey[key] {
				if seen == flag {
					return
				}
			}
			byKey[key] = append(byKey[key], flag)
		})
	}
	collect(root.PersistentFlags())
	for _, cmd := range commands {
		collect(cmd.LocalFlags())
	}

	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		env := "ECL_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		rows = append(rows, []string{InlineCode(env), InlineCode(key), strings.Join(byKey[key], ", ")})
	}
	return rows
}

func commandPage(cmd *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	desc := cmd.Long
	if desc == "" {
		desc = cmd.Short
	}
	w.Paragraph(desc)

	w.Header(2, "Usage")
	use := cmd.UseLine()
	if !strings.HasPrefix(use, "ecl") {
		use = "ecl " + use
	}
	w.CodeBlock("bash", use)

	if len(cmd.Aliases) > 0 {
		aliases := make([]string, len(cmd.Aliases))
		for i, a := range cmd.Aliases {
			aliases[i] = InlineCode(a)
		}
		w.Header(2, "Aliases")
		w.BulletList(aliases)
	}

	if cmd.HasAvailableSubCommands() {
		var rows [][]string
		for _, sub := range cmd.Commands() {
			if sub.IsAvailableCommand() {
				rows = append(rows, []string{InlineCode(sub.Name()), cleanDescription(sub.Short)})
			}
		}
		w.Header(2, "Subcommands")
		w.Table([]string{"Subcommand", "Description"}, rows)
	}

	if cmd.HasAvailableLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}
	if cmd.HasAvailableInheritedFlags() {
		w.Header(2, "Global Options")
		writeFlagsTable(w, cmd.InheritedFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}
	return w.Bytes()
}

// writeFlagsTable renders flags with the config key each one overrides.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		short := ""
		if f.Shorthand != "" {
			short = InlineCode("-" + f.Shorthand)
		}
		def := f.DefValue
		if def != "" && def != "[]" && f.Value.Type() != "bool" {
			def = InlineCode(def)
		} else if def == "[]" {
			def = ""
		}
		key := ""
		if k, ok := config.FlagKey(f.Name); ok {
			key = InlineCode(k)
		}
		rows = append(rows, []string{InlineCode("--" + f.Name), short, def, key, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Option", "Short", "Default", "Config key", "Description"}, rows)
}

// cleanExample strips the indentation shared by every non-blank line.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")
	indent := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		if n := len(line) - len(trimmed); indent < 0 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return strings.TrimSpace(example)
	}
	for i, line := range lines {
		if len(line) >= indent {
			lines[i] = line[indent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
