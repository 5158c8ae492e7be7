package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/Faultbox/midgard-input/internal/input/bindctx"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	contextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	cellStyle    = lipgloss.NewStyle()
	unboundStyle = lipgloss.NewStyle().Faint(true)
)

const unboundMark = "-"

func newListCmd(opts *options) *cobra.Command {
	var context string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the bindings of every action",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts.file)
			if err != nil {
				return err
			}
			ctxs, err := s.contexts(context)
			if err != nil {
				return err
			}
			return writeTable(cmd.OutOrStdout(), s, ctxs)
		},
	}
	cmd.Flags().StringVarP(&context, "context", "c", "", "Only show this bind context")
	return cmd
}

func writeTable(w io.Writer, s *session, ctxs []*bindctx.Context) error {
	rows := [][]string{{"CONTEXT", "ACTION", "DESCRIPTION", "PRIMARY", "SECONDARY", "GAMEPAD"}}
	for _, bc := range ctxs {
		for _, title := range bc.Titles() {
			a, _ := s.action(bc, title)
			row := []string{bc.Name(), title, s.reg.Describe(a)}
			for _, kind := range allKinds {
				name := get(bc, a, kind)
				if name == "" {
					name = unboundMark
				}
				row = append(row, name)
			}
			rows = append(rows, row)
		}
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			style := cellStyle
			switch {
			case r == 0:
				style = headerStyle
			case i == 0:
				style = contextStyle
			case cell == unboundMark:
				style = unboundStyle
			}
			cells[i] = style.Width(widths[i] + 2).Render(cell)
		}
		line := strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, cells...), " ")
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func newSetCmd(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "set <context> <action> <primary|secondary|gamepad> <input>",
		Short: "Bind a key or gamepad button to an action",
		Long: `Bind a key or gamepad button to one slot of an action.

Keys use their SDL names ("Space", "Left Shift", "Keypad 5"), gamepad
buttons their controller mapping names ("a", "dpup", "leftshoulder").
An input already bound to another action is refused unless --force is
given, in which case the other action loses it.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseSlotKind(args[2])
			if err != nil {
				return err
			}
			s, err := openSession(opts.file)
			if err != nil {
				return err
			}
			bc, err := s.context(args[0])
			if err != nil {
				return err
			}
			a, err := s.action(bc, args[1])
			if err != nil {
				return err
			}
			if err := bind(bc, a, kind, args[3], force); err != nil {
				return err
			}
			if err := s.save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s.%s %s = %s\n", bc.Name(), args[1], kind, get(bc, a, kind))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Take the input from the action that holds it")
	return cmd
}

func newClearCmd(opts *options) *cobra.Command {
	slot := kindAll

	cmd := &cobra.Command{
		Use:   "clear <context> <action>",
		Short: "Unbind an action",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts.file)
			if err != nil {
				return err
			}
			bc, err := s.context(args[0])
			if err != nil {
				return err
			}
			a, err := s.action(bc, args[1])
			if err != nil {
				return err
			}
			unbind(bc, a, slot)
			if err := s.save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s.%s %s\n", bc.Name(), args[1], slot)
			return nil
		},
	}
	cmd.Flags().Var(&slot, "slot", "Slot to clear: primary, secondary, gamepad or all")
	return cmd
}

func newResetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset [context]",
		Short: "Restore default bindings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts.file)
			if err != nil {
				return err
			}
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			ctxs, err := s.contexts(name)
			if err != nil {
				return err
			}
			for _, bc := range ctxs {
				bc.SetKeys(bc.DefaultKeys())
				bc.SetButtons(bc.DefaultButtons())
				fmt.Fprintf(cmd.OutOrStdout(), "reset %s\n", bc.Name())
			}
			return s.save()
		},
	}
}

// jsonPath escapes the gjson/sjson path metacharacters in each part.
func jsonPath(parts ...string) string {
	esc := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)
	for i, p := range parts {
		parts[i] = esc.Replace(p)
	}
	return strings.Join(parts, ".")
}

func newExportCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the bindings as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts.file)
			if err != nil {
				return err
			}
			data, err := exportJSON(s)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(output, data, 0644)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}

// exportJSON renders every context as
// {"<context>": {"<action>": {"description", "primary", "secondary", "gamepad"}}}.
func exportJSON(s *session) ([]byte, error) {
	ctxs, err := s.contexts("")
	if err != nil {
		return nil, err
	}

	out := []byte("{}")
	for _, bc := range ctxs {
		for _, title := range bc.Titles() {
			a, _ := s.action(bc, title)
			if out, err = sjson.SetBytes(out, jsonPath(bc.Name(), title, "description"), s.reg.Describe(a)); err != nil {
				return nil, err
			}
			for _, kind := range allKinds {
				if out, err = sjson.SetBytes(out, jsonPath(bc.Name(), title, string(kind)), get(bc, a, kind)); err != nil {
					return nil, err
				}
			}
		}
	}
	return pretty.Pretty(out), nil
}

func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Replace bindings with the contents of a JSON export",
		Long: `Replace the bindings of every context present in a JSON file written
by export. Slots missing from the file are left unbound. Nothing is saved
if any entry fails to apply.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			s, err := openSession(opts.file)
			if err != nil {
				return err
			}
			n, err := importJSON(s, data)
			if err != nil {
				return err
			}
			if err := s.save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d actions\n", n)
			return nil
		},
	}
}

func importJSON(s *session, data []byte) (int, error) {
	if !gjson.ValidBytes(data) {
		return 0, errors.New("import: not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return 0, errors.New("import: expected an object of bind contexts")
	}

	var errs []error
	n := 0
	root.ForEach(func(ck, cv gjson.Result) bool {
		bc, err := s.context(ck.String())
		if err != nil {
			errs = append(errs, err)
			return true
		}
		bc.ClearBindings()

		cv.ForEach(func(tk, tv gjson.Result) bool {
			a, err := s.action(bc, tk.String())
			if err != nil {
				errs = append(errs, err)
				return true
			}
			for _, kind := range allKinds {
				v := tv.Get(string(kind))
				if !v.Exists() {
					continue
				}
				if err := bind(bc, a, kind, v.String(), false); err != nil {
					errs = append(errs, fmt.Errorf("%s.%s %s: %w", bc.Name(), tk.String(), kind, err))
				}
			}
			n++
			return true
		})
		return true
	})

	if len(errs) > 0 {
		return 0, errors.Join(errs...)
	}
	return n, nil
}
