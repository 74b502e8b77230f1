package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rxtech-lab/argo-indicators/internal/indicator"
	"github.com/rxtech-lab/argo-indicators/internal/overlay"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/internal/version"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/urfave/cli/v3"
)

var errSocketURL = errors.New(errors.ErrCodeInvalidConfiguration, "--follow needs backend.socket_url or ARGO_SOCKET_URL")

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the available indicators with their defaults",
		Action: func(_ context.Context, cmd *cli.Command) error {
			fmt.Fprintln(cmd.Root().Writer, renderIndicatorTable(indicator.NewDefaultRegistry().ListIndicators()))

			return nil
		},
	}
}

func renderIndicatorTable(descriptors []indicator.Descriptor) string {
	t := table.New().
		Headers("TYPE", "NAME", "DEFAULTS", "PANE", "LINES").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TitleStyle.Padding(0, 1)
			}

			if col == 3 && row >= 0 && row < len(descriptors) {
				if overlay.PaneFor(descriptors[row].Type) == overlay.PanePrice {
					return PriceStyle.Padding(0, 1)
				}

				return OscillatorStyle.Padding(0, 1)
			}

			return CellStyle
		})

	for _, d := range descriptors {
		t.Row(
			string(d.Type),
			d.Name,
			overlay.Label(d, d.Defaults),
			string(overlay.PaneFor(d.Type)),
			strings.Join(d.Lines, " "),
		)
	}

	return t.Render()
}

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:      "schema",
		Usage:     "Print the JSON schema of an indicator's parameters",
		ArgsUsage: "NAME",
		Action: func(_ context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()

			indicatorType, ok := types.ParseIndicatorType(name)
			if !ok {
				return errors.Newf(errors.ErrCodeIndicatorNotFound, "unknown indicator %q", name)
			}

			descriptor, err := indicator.NewDefaultRegistry().GetIndicator(indicatorType)
			if err != nil {
				return err
			}

			schema, err := descriptor.SchemaJSON()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.Root().Writer, schema)

			return nil
		},
	}
}

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Print the effective configuration as YAML",
		Action: func(_ context.Context, cmd *cli.Command) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			data, err := a.config.Marshal()
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.Root().Writer, string(data))

			return nil
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the version",
		Action: func(_ context.Context, cmd *cli.Command) error {
			fmt.Fprintf(cmd.Root().Writer, "%s %s\n", TitleStyle.Render("argo-indicators"), version.GetVersion())
			fmt.Fprintln(cmd.Root().Writer, HelpStyle.Render("config version "+version.ConfigVersion))

			return nil
		},
	}
}
