package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/alnah/go-md2cv/internal/cv"
	"github.com/alnah/go-md2cv/internal/templates"
)

// runTemplates prints the template catalogue.
func runTemplates(_ context.Context, args []string, env *Environment) error {
	flags, positional, err := parseTemplatesFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: templates takes no arguments", ErrUsage)
	}

	registry := templates.Builtin()
	list := registry.List()
	if flags.layout != "" {
		layout, ok := cv.ParseLayout(flags.layout)
		if !ok {
			return fmt.Errorf("%w: layout %q (must be single-column or two-column)", ErrUsage, flags.layout)
		}
		list = registry.ListByLayout(layout)
	}

	defaultID := registry.Default().ID
	tw := tabwriter.NewWriter(env.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLAYOUT\tNAME\tDESCRIPTION")
	for _, t := range list {
		id := t.ID
		if id == defaultID {
			id += " (default)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", id, t.Layout, t.Name, t.Description)
	}
	return tw.Flush()
}
