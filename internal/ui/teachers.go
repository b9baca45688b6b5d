package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/horario/internal/schedule"
)

func (a *App) teachersCmd() *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "teachers",
		Short: "List the teachers of a group",
		Long: `List the teachers that teach at least one block of the group, in
the order they first appear in the schedule.`,
		Example: `  horario teachers --group 1A`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := a.loadState(viewOptions{group: group})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			teachers := state.Teachers()
			if len(teachers) == 0 {
				fmt.Fprintf(w, "No teachers found for group %s.\n", group)
				return nil
			}

			fmt.Fprintf(w, "  %s\n", formatHeader("Teachers of "+state.Store().GroupName(group)))
			for _, t := range teachers {
				fmt.Fprintf(w, "    %-12s %s\n", formatMuted(t.ID), t.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&group, "group", "", "Group id (required)")
	_ = cmd.MarkFlagRequired("group")
	return cmd
}

func (a *App) groupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List the groups",
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := a.loadState(viewOptions{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			groups := state.GroupOptions()
			if len(groups) == 0 {
				fmt.Fprintln(w, "No groups found.")
				return nil
			}

			for _, g := range groups {
				fmt.Fprintf(w, "    %-12s %-16s %s\n", formatMuted(g.ID), g.Name, preferredRoom(g))
			}
			return nil
		},
	}
}

func preferredRoom(g schedule.Group) string {
	if g.PreferredRoomName == "" {
		return ""
	}
	return "room " + g.PreferredRoomName
}
