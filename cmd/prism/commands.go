package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"prism/internal/accent"
	"prism/internal/catalog"
	appErrors "prism/internal/errors"
	"prism/internal/workflow"

	"github.com/spf13/cobra"
)

// spinnerDelay keeps the spinner away for quick operations.
const spinnerDelay = 250 * time.Millisecond

type listOptions struct {
	category   string
	customized bool
	search     string
}

func newListCmd(app *cliApp) *cobra.Command {
	opts := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List applications and their accent overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := catalog.ParseCategory(opts.category)
			if err != nil {
				return appErrors.New(appErrors.CodeConfigurationError, err.Error(), err)
			}
			ctx := cmd.Context()
			svc, err := app.services(ctx, nil)
			if err != nil {
				return err
			}
			cat, err := svc.discover(ctx, nil)
			if err != nil {
				return err
			}
			apps := cat.View(catalog.Query{
				Category:       category,
				Search:         strings.TrimSpace(opts.search),
				CustomizedOnly: opts.customized,
				SystemAccent:   svc.store.SystemAccent(ctx),
			})
			if app.jsonOutput() {
				if apps == nil {
					apps = []*catalog.Application{}
				}
				return writeJSON(cmd.OutOrStdout(), apps)
			}
			if len(apps) == 0 {
				writeOut(cmd, "No applications found\n")
				return nil
			}
			writeOut(cmd, "%s\n", renderAppTable(apps))
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.category, "category", "c", "any",
		"Category to list (any, featured, launchpad, dock, system, deprecating)")
	cmd.Flags().BoolVar(&opts.customized, "customized", false, "Only applications whose accent differs from the system")
	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "Only applications whose name contains every word")
	return cmd
}

type accentReport struct {
	Domain string       `json:"domain"`
	Accent accent.Value `json:"accent"`
	Color  string       `json:"color"`
}

func newGetCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "get <domain>",
		Short: "Show the accent override stored for a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.services(cmd.Context(), nil)
			if err != nil {
				return err
			}
			domain := strings.TrimSpace(args[0])
			v := svc.store.Accent(domain)
			if app.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), accentReport{Domain: domain, Accent: v, Color: v.ColorName()})
			}
			writeOut(cmd, "%s\n", accentLabel(v))
			return nil
		},
	}
}

type setOptions struct {
	relaunch bool
}

func newSetCmd(app *cliApp) *cobra.Command {
	opts := &setOptions{}
	cmd := &cobra.Command{
		Use:   "set <domain> <accent>",
		Short: "Override an application's accent color",
		Long: strings.TrimSpace(`
Store an accent override for the application and, when relaunching is
enabled, quit and reopen it so the color takes effect.

Accents: red, orange, yellow, green, blue, purple, pink, graphite,
space-gray, gold, rose-gold, silver, or default to remove the override.`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := app.services(ctx, nil)
			if err != nil {
				return err
			}
			v, err := accent.Parse(args[1], svc.capability.Scheme())
			if err != nil {
				return err
			}
			return runAssign(cmd, app, svc, args[0], v, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.relaunch, "relaunch", false, "Relaunch the application (overrides the saved setting)")
	return cmd
}

func newResetCmd(app *cliApp) *cobra.Command {
	opts := &setOptions{}
	cmd := &cobra.Command{
		Use:   "reset <domain>",
		Short: "Remove an application's accent override",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.services(cmd.Context(), nil)
			if err != nil {
				return err
			}
			return runAssign(cmd, app, svc, args[0], accent.Unset, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.relaunch, "relaunch", false, "Relaunch the application (overrides the saved setting)")
	return cmd
}

type assignReport struct {
	Domain     string       `json:"domain"`
	Accent     accent.Value `json:"accent"`
	State      string       `json:"state"`
	Written    bool         `json:"written"`
	Relaunched bool         `json:"relaunched"`
	TimedOut   bool         `json:"timedOut"`
	Warning    string       `json:"warning,omitempty"`
}

func runAssign(cmd *cobra.Command, app *cliApp, svc *services, domain string, v accent.Value, opts *setOptions) error {
	ctx := cmd.Context()
	domain = strings.TrimSpace(domain)
	target, err := svc.application(ctx, domain)
	if err != nil {
		return err
	}

	assigner := *svc.assigner
	if cmd.Flags().Changed("relaunch") {
		relaunch := opts.relaunch
		assigner.RelaunchEnabled = func(context.Context) bool { return relaunch }
	}

	var sp *progressSpinner
	if !app.jsonOutput() && isTerminal(cmd.ErrOrStderr()) {
		sp = newProgressSpinner(cmd.ErrOrStderr(), spinnerDelay)
		assigner.OnTransition = sp.Transition
	}
	res, err := assigner.Assign(ctx, target, v)
	sp.Stop()
	if err != nil {
		return err
	}

	report := assignReport{
		Domain:     domain,
		Accent:     v,
		State:      res.State.String(),
		Written:    res.Written,
		Relaunched: res.Relaunched,
		TimedOut:   res.TimedOut,
	}
	if res.Err != nil {
		report.Warning = res.Err.Error()
	}
	if app.jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), report)
	}

	switch {
	case res.State == workflow.Idle:
		writeOut(cmd, "Prism does not change its own accent\n")
		return nil
	case v == accent.Unset:
		writeOut(cmd, "Reset %s to the system accent\n", target.DisplayName)
	default:
		writeOut(cmd, "Set %s to %s\n", target.DisplayName, v.ColorName())
	}
	switch {
	case res.TimedOut:
		writeErr(cmd, "Warning: %s did not quit in time; restart it to see the change\n", target.DisplayName)
	case res.Err != nil:
		writeErr(cmd, "Warning: relaunching %s failed: %v\n", target.DisplayName, res.Err)
	case res.Relaunched:
		writeOut(cmd, "Relaunched %s\n", target.DisplayName)
	}
	return nil
}

type matchReport struct {
	Input  string       `json:"input"`
	Accent accent.Value `json:"accent"`
	Swatch string       `json:"swatch"`
}

func newMatchCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "match <#rrggbb>",
		Short: "Find the accent closest to a color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rgb, err := accent.ParseHex(args[0])
			if err != nil {
				return appErrors.New(appErrors.CodeInvalidAccent, err.Error(), err)
			}
			v := accent.BestMatch(rgb)
			swatch, _ := accent.Swatch(v)
			if app.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), matchReport{Input: rgb.Hex(), Accent: v, Swatch: swatch.Hex()})
			}
			writeOut(cmd, "%s\n", accentLabel(v))
			return nil
		},
	}
}

type relaunchReport struct {
	Relaunch bool `json:"relaunch"`
}

func newRelaunchCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:       "relaunch [on|off|status]",
		Short:     "Show or change whether applications are relaunched after a change",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"on", "off", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := app.services(ctx, nil)
			if err != nil {
				return err
			}
			action := "status"
			if len(args) == 1 {
				action = strings.ToLower(strings.TrimSpace(args[0]))
			}
			switch action {
			case "on", "off":
				if err := svc.store.SetRelaunch(ctx, svc.selfDomain, action == "on"); err != nil {
					return appErrors.New(appErrors.CodeWriteFailed, "save relaunch setting", err)
				}
			case "status":
			default:
				return appErrors.New(appErrors.CodeConfigurationError,
					fmt.Sprintf("unknown relaunch action %q (want on, off or status)", action), nil)
			}
			enabled := svc.store.RelaunchEnabled(ctx, svc.selfDomain)
			if app.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), relaunchReport{Relaunch: enabled})
			}
			state := "off"
			if enabled {
				state = "on"
			}
			writeOut(cmd, "Relaunch is %s\n", state)
			return nil
		},
	}
}

type systemReport struct {
	Accent     accent.Value `json:"accent"`
	Color      string       `json:"color"`
	Capability string       `json:"capability"`
}

func newSystemCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "system",
		Short: "Show the system accent and color scheme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := app.services(ctx, nil)
			if err != nil {
				return err
			}
			v := svc.store.SystemAccent(ctx)
			if app.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), systemReport{
					Accent:     v,
					Color:      v.ColorName(),
					Capability: svc.capability.String(),
				})
			}
			writeOut(cmd, "%s (%s)\n", accentLabel(v), svc.capability)
			return nil
		},
	}
}
