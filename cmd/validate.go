package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/icons"
)

var validateCmd = &cobra.Command{
	Use:   "validate [content-file]",
	Short: "Parse a content document and report problems",
	Long: `validate parses the content document (the configured one when no file
is given) and lists icon names that will fall back to the default icon.
Unknown icons are warnings: the page still renders.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.ContentPath
		if len(args) == 1 {
			path = args[0]
		}

		doc, err := content.Load(path)
		if err != nil {
			return err
		}

		unknown := unknownIcons(doc)
		out := cmd.OutOrStdout()
		printUnknownIcons(out, unknown)

		name := path
		if name == "" {
			name = "bundled content"
		}
		fmt.Fprintf(out, "%s: %d experience entries, %d projects, %d unknown icons\n",
			name, len(doc.Experience), len(doc.Projects), len(unknown))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// iconRef is an icon name and where in the document it appears.
type iconRef struct {
	Where string
	Name  string
}

func unknownIcons(doc *content.Document) []iconRef {
	var refs []iconRef
	check := func(where, name string) {
		if _, ok := icons.Lookup(name); !ok {
			refs = append(refs, iconRef{Where: where, Name: name})
		}
	}

	for i, c := range doc.Hero.FloatingCards {
		check(fmt.Sprintf("hero.floatingCards[%d]", i), c.Icon)
	}
	for i, h := range doc.About.Highlights {
		check(fmt.Sprintf("about.highlights[%d]", i), h.Icon)
	}
	for i, c := range doc.Skills.Categories {
		check(fmt.Sprintf("skills.categories[%d]", i), c.Icon)
	}
	for i, s := range doc.Skills.Specializations {
		check(fmt.Sprintf("skills.specializations[%d]", i), s.Icon)
	}
	for i, p := range doc.Projects {
		check(fmt.Sprintf("projects[%d]", i), p.Icon)
	}
	return refs
}

func printUnknownIcons(w io.Writer, refs []iconRef) {
	for _, r := range refs {
		fmt.Fprintf(w, "warning: %s: unknown icon %q, using %s\n", r.Where, r.Name, icons.Default)
	}
}
