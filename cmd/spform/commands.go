package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-spform/internal/fill"
	"github.com/goliatone/go-spform/internal/prompt"
	"github.com/goliatone/go-spform/pkg/field"
)

// fieldRow is one line of the fields listing.
type fieldRow struct {
	Name     string `json:"name" yaml:"name"`
	Kind     string `json:"kind" yaml:"kind"`
	Variant  string `json:"variant" yaml:"variant"`
	Required bool   `json:"required" yaml:"required"`
	Visible  bool   `json:"visible" yaml:"visible"`
}

func (a *app) fieldsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fields FORM",
		Short: "List the fields of a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := a.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer form.Close()

			cat := form.Catalog()
			names, err := cat.Names()
			if err != nil {
				return err
			}
			rows := make([]fieldRow, 0, len(names))
			for _, name := range names {
				desc, err := cat.Descriptor(name)
				if err != nil {
					return err
				}
				visible, _ := cat.Visible(name)
				row := fieldRow{
					Name:     name,
					Kind:     desc.Kind.String(),
					Required: desc.Required,
					Visible:  visible,
				}
				if desc.Marker != "" && !desc.Kind.Known() {
					row.Kind = desc.Marker
				}
				if fld, err := cat.Field(name); err != nil {
					a.logger.Warn("field construction failed", zap.String("field", name), zap.Error(err))
					row.Variant = "error"
				} else {
					row.Variant = fld.Variant()
				}
				rows = append(rows, row)
			}
			return a.printRows(rows)
		},
	}
	cmd.Flags().StringVarP(&a.output, "output", "o", "", "Output format: table, yaml or json")
	return cmd
}

func (a *app) printRows(rows []fieldRow) error {
	switch a.output {
	case outputJSON:
		return writeJSON(a.stdout, rows)
	case outputYAML:
		return writeYAML(a.stdout, rows)
	}
	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tVARIANT\tREQUIRED\tVISIBLE")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%t\n", row.Name, row.Kind, row.Variant, row.Required, row.Visible)
	}
	return tw.Flush()
}

func (a *app) getCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get FORM NAME",
		Short: "Print the value of one field",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := a.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer form.Close()

			v, err := form.Value(args[1])
			if err != nil {
				return err
			}
			switch a.output {
			case outputJSON:
				return writeJSON(a.stdout, v)
			case outputYAML:
				return writeYAML(a.stdout, v)
			}
			_, err = fmt.Fprintln(a.stdout, formatValue(v))
			return err
		},
	}
	cmd.Flags().StringVarP(&a.output, "output", "o", "", "Output format: table, yaml or json")
	return cmd
}

// formatValue renders a field value as plain text. Lists print one entry per
// line.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		return strings.Join(t, "\n")
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case field.URLValue:
		return t.URL + ", " + t.Description
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func (a *app) applyCmd() *cobra.Command {
	var planPath, out string
	cmd := &cobra.Command{
		Use:   "apply FORM",
		Short: "Apply a value plan and write the resulting form",
		Long: `apply loads a plan (a YAML, TOML or JSON file, or a directory of them)
and sets values, visibility and read-only state on the form. Entries that fail
are reported and the rest still apply.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if planPath == "" {
				return fmt.Errorf("--plan is required")
			}
			form, err := a.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer form.Close()

			applyErr := form.ApplyFile(planPath)
			if applyErr != nil {
				a.logger.Warn("plan applied with errors", zap.Error(applyErr))
			}
			if err := a.save(form, out); err != nil {
				return err
			}
			return applyErr
		},
	}
	cmd.Flags().StringVar(&planPath, "plan", "", "Plan file or directory")
	cmd.Flags().StringVar(&out, "out", "", "Write the form here instead of stdout")
	return cmd
}

func (a *app) fillCmd() *cobra.Command {
	var out string
	var hidden bool
	cmd := &cobra.Command{
		Use:   "fill FORM",
		Short: "Prompt for field values and write the resulting form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := a.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer form.Close()

			driver := prompt.NewSurveyDriver(prompt.WithPageSize(a.cfg.PageSize), prompt.WithOutput(cmd.ErrOrStderr()))
			opts := []fill.Option{fill.WithLogger(a.logger)}
			if hidden {
				opts = append(opts, fill.WithHidden())
			}
			res, fillErr := fill.New(driver, opts...).Fill(cmd.Context(), form.Catalog())
			a.logger.Info("fill finished", zap.Strings("changed", res.Changed), zap.Strings("skipped", res.Skipped))
			if fillErr != nil && len(res.Changed) == 0 {
				return fillErr
			}
			if err := a.save(form, out); err != nil {
				return err
			}
			return fillErr
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Write the form here instead of stdout")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "Also prompt for hidden fields")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
