package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cutlist/report"
	"cutlist/selection"
)

var selectionCmd = &cobra.Command{
	Use:     "selection",
	Aliases: []string{"sel"},
	Short:   "Manage saved selections",
	Long:    "Save, list, show and delete named segment selections kept in the selection store.",
}

var selectionSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a selection from --ids or a selection file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sel := selection.Selection{Name: args[0], Goal: saveGoal}
		if saveFrom != "" {
			loaded, err := selection.Load(saveFrom)
			if err != nil {
				return err
			}
			sel.IDs = loaded.IDs
			if sel.Goal == "" {
				sel.Goal = loaded.Goal
			}
		}
		if saveIDs != "" {
			ids, err := selection.ParseIDs(saveIDs)
			if err != nil {
				return err
			}
			sel.IDs = append(sel.IDs, ids...)
		}
		if len(sel.IDs) == 0 {
			return fmt.Errorf("no ids given: use --ids or --from")
		}
		if err := store().Save(sel); err != nil {
			return err
		}
		fmt.Printf("Saved selection %s (%d ids)\n", selection.Key(sel.Name), len(sel.IDs))
		return nil
	},
}

var selectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved selections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sels, err := store().List(cmd.Context())
		if err != nil {
			return err
		}
		if len(sels) == 0 {
			fmt.Printf("No saved selections in %s\n", cfg.StorePath)
			return nil
		}
		return report.Selections(os.Stdout, sels, useColor())
	},
}

var selectionShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a saved selection as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, err := store().Get(args[0])
		if err != nil {
			return err
		}
		if showOut != "" {
			if err := selection.Save(showOut, sel); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", showOut)
			return nil
		}
		fmt.Printf("name: %s\n", sel.Name)
		if sel.Goal != "" {
			fmt.Printf("goal: %s\n", sel.Goal)
		}
		fmt.Printf("ids: %q\n", selection.FormatIDs(sel.IDs))
		return nil
	},
}

var selectionDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved selection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store().Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted selection %s\n", selection.Key(args[0]))
		return nil
	},
}

var (
	saveIDs  string
	saveFrom string
	saveGoal string
	showOut  string
)

func init() {
	selectionCmd.AddCommand(selectionSaveCmd)
	selectionCmd.AddCommand(selectionListCmd)
	selectionCmd.AddCommand(selectionShowCmd)
	selectionCmd.AddCommand(selectionDeleteCmd)

	selectionSaveCmd.Flags().StringVar(&saveIDs, "ids", "", "Segment ids, e.g. 1,4,7-9")
	selectionSaveCmd.Flags().StringVar(&saveFrom, "from", "", "Read ids from a selection file")
	selectionSaveCmd.Flags().StringVar(&saveGoal, "goal", "", "What the selection is for")
	selectionShowCmd.Flags().StringVar(&showOut, "out", "", "Write the selection to this YAML file instead")
}

func store() *selection.Store {
	return selection.NewStore(cfg.StorePath)
}
