package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *App) problemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "problems",
		Short: "Browse and manage the problem catalog",
	}

	cmd.AddCommand(a.problemsListCmd(), a.problemsShowCmd(), a.problemsCreateCmd())
	return cmd
}

func (a *App) problemsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List problems",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.api.ListProblems(cmd.Context())
			if err != nil {
				return a.explain(err)
			}

			if len(items) == 0 {
				a.printf("No problems yet\n")
				return nil
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tDIFFICULTY")
			for _, p := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Title, p.Difficulty)
			}
			return tw.Flush()
		},
	}
}

func (a *App) problemsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.api.GetProblem(cmd.Context(), args[0])
			if err != nil {
				return a.explain(err)
			}

			a.printf("%s [%s]\n\n%s\n", p.Title, p.Difficulty, p.Description)
			return nil
		},
	}
}

func (a *App) problemsCreateCmd() *cobra.Command {
	var title, difficulty, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a problem (admin only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.loggedIn() {
				return errNotLoggedIn
			}

			if description == "" {
				v, err := promptText(a.reader, a.out, "Description")
				if err != nil {
					return err
				}
				description = v
			}

			p, err := a.api.CreateProblem(cmd.Context(), title, description, difficulty)
			if err != nil {
				return a.explain(err)
			}

			a.printf("Created problem %s\n", p.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "problem title")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "easy", "easy, medium or hard")
	cmd.Flags().StringVar(&description, "description", "", "problem statement (prompted when empty)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func (a *App) roleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "role <user-id> <user|admin>",
		Short: "Change a user's role (admin only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.loggedIn() {
				return errNotLoggedIn
			}

			if err := a.api.SetRole(cmd.Context(), args[0], args[1]); err != nil {
				return a.explain(err)
			}

			a.printf("User %s is now %s\n", args[0], args[1])
			return nil
		},
	}
}
