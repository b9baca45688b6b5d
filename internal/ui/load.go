package ui

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/horario/internal/schedule"
)

// viewOptions holds the flags shared by the commands that show a week.
type viewOptions struct {
	group        string
	teacher      string
	scopeGroup   string
	scopeTeacher string
	scopeRoom    string
}

func (o *viewOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.group, "group", "", "Show one group (id)")
	cmd.Flags().StringVar(&o.teacher, "teacher", "", "Show one teacher (id)")
	cmd.Flags().StringVar(&o.scopeGroup, "scope-group", "", "Ask the source for one group only")
	cmd.Flags().StringVar(&o.scopeTeacher, "scope-teacher", "", "Ask the source for one teacher only")
	cmd.Flags().StringVar(&o.scopeRoom, "scope-room", "", "Ask the source for one room only")
	cmd.MarkFlagsMutuallyExclusive("scope-group", "scope-teacher", "scope-room")
}

// scope maps the scope flags to the fetched scope.
func (o viewOptions) scope() schedule.Scope {
	switch {
	case o.scopeGroup != "":
		return schedule.GroupScope(o.scopeGroup)
	case o.scopeTeacher != "":
		return schedule.TeacherScope(o.scopeTeacher)
	case o.scopeRoom != "":
		return schedule.RoomScope(o.scopeRoom)
	default:
		return schedule.AllScope()
	}
}

func (o viewOptions) filter() schedule.FilterContext {
	return schedule.FilterContext{GroupID: o.group, TeacherID: o.teacher}
}

// loadState fetches the scope and builds the filtered view.
func (a *App) loadState(opts viewOptions) (*schedule.ViewState, error) {
	src, err := a.source()
	if err != nil {
		return nil, err
	}

	ctx, cancel := a.fetchContext()
	defer cancel()

	scope := opts.scope()
	store := schedule.NewStore()
	if err := store.Refresh(ctx, src, scope); err != nil {
		return nil, fmt.Errorf("loading %s: %w", scope, err)
	}
	a.logger.Info("schedule loaded",
		zap.Stringer("scope", scope),
		zap.Int("entries", len(store.Entries())),
	)

	return schedule.NewViewState(store, a.config.Window(),
		schedule.WithLogger(a.logger),
		schedule.WithFilter(opts.filter()),
	), nil
}
