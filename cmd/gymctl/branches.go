package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/milicode/gym-panel/internal/app/model"
	"github.com/milicode/gym-panel/internal/app/service"
	"github.com/spf13/cobra"
)

func newBranchesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branches",
		Short: "List, show, export and import branches",
	}
	cmd.AddCommand(
		newListCmd(c),
		newShowCmd(c),
		newExportCmd(c),
		newTemplateCmd(c),
		newImportCmd(c),
	)
	return cmd
}

func newListCmd(c *cli) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all branches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			branches, err := c.api.ListBranches(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(c, branches)
			}

			w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tBRANCH\tPHONE\tCOMPLETED")
			for _, b := range branches {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", b.ID, b.Name, b.BranchName, b.Phone, b.CompletedData)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func newShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one branch as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			branch, err := c.api.GetBranch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(c, branch)
		},
	}
}

func writeJSON(c *cli, v interface{}) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newExportCmd(c *cli) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the branch list to an XLSX file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			branches, err := c.api.ListBranches(cmd.Context())
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := service.WriteBranchesXLSX(f, branches); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Fprintf(c.out, "Exported %d branches to %s\n", len(branches), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "branches.xlsx", "output file")
	return cmd
}

func newTemplateCmd(c *cli) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write an empty import sheet with the expected columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := service.WriteImportTemplateXLSX(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Import template written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "branches-import.xlsx", "output file")
	return cmd
}

func newImportCmd(c *cli) *cobra.Command {
	var (
		yes    bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Register branches from a spreadsheet",
		Long: `Register branches from a spreadsheet, one registration per row.

Rows are checked with the same rules as the registration wizard; invalid rows
are reported and skipped. Use "gymctl branches template" for the column layout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			fmt.Fprintf(c.out, "Reading XLSX file: %s\n", args[0])
			regs, rejected, err := service.ReadRegistrationsXLSX(f, model.DefaultGazetteer())
			if err != nil {
				return err
			}
			for _, r := range rejected {
				fmt.Fprintf(c.out, "skipped %s\n", r.Error())
			}
			fmt.Fprintf(c.out, "Total branches to import: %d (skipped %d)\n", len(regs), len(rejected))

			if dryRun || len(regs) == 0 {
				return nil
			}
			if !yes && !confirm(c, "Do you want to proceed with the import? (yes/no): ") {
				fmt.Fprintln(c.out, "Import cancelled.")
				return nil
			}

			var failed int
			for i, reg := range regs {
				if err := c.api.CreateBranch(cmd.Context(), reg); err != nil {
					failed++
					fmt.Fprintf(c.out, "failed %d/%d %q: %v\n", i+1, len(regs), reg.Name, err)
					continue
				}
				fmt.Fprintf(c.out, "created %d/%d %q\n", i+1, len(regs), reg.Name)
			}

			fmt.Fprintf(c.out, "Import completed: %d created, %d failed\n", len(regs)-failed, failed)
			if failed > 0 {
				return fmt.Errorf("%d branches failed to import", failed)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only validate the file")
	return cmd
}

func confirm(c *cli, prompt string) bool {
	fmt.Fprint(c.out, prompt)
	answer, _ := bufio.NewReader(c.in).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "yes" || answer == "y"
}
