package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var subscribersCmd = &cobra.Command{
	Use:   "subscribers",
	Short: "Manage the e-mail subscriber list",
}

var subscribersAddCmd = &cobra.Command{
	Use:   "add <email>...",
	Short: "Subscribe one or more addresses",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := dataDir(cmd)
		return withLock(dir, func() error {
			subs, err := openSubscribers(dir)
			if err != nil {
				return err
			}
			defer subs.Close()

			for _, email := range args {
				added, err := subs.Add(cmd.Context(), email)
				if err != nil {
					return fmt.Errorf("%s: %w", email, err)
				}
				if added {
					fmt.Printf("+ %s\n", email)
				} else {
					fmt.Printf("= %s (already subscribed)\n", email)
				}
			}
			return nil
		})
	},
}

var subscribersRemoveCmd = &cobra.Command{
	Use:   "remove <email>...",
	Short: "Unsubscribe one or more addresses",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := dataDir(cmd)
		return withLock(dir, func() error {
			subs, err := openSubscribers(dir)
			if err != nil {
				return err
			}
			defer subs.Close()

			for _, email := range args {
				removed, err := subs.Remove(cmd.Context(), email)
				if err != nil {
					return fmt.Errorf("%s: %w", email, err)
				}
				if removed {
					fmt.Printf("- %s\n", email)
				} else {
					fmt.Printf("? %s (not subscribed)\n", email)
				}
			}
			return nil
		})
	},
}

var subscribersListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print subscribers",
	RunE: func(cmd *cobra.Command, args []string) error {
		subs, err := openSubscribers(dataDir(cmd))
		if err != nil {
			return err
		}
		defer subs.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		list, err := subs.List(cmd.Context(), limit)
		if err != nil {
			return err
		}
		for _, s := range list {
			fmt.Printf("%s\t%s\n", s.Email, s.CreatedAt.Format("2006-01-02"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(subscribersCmd)
	subscribersCmd.AddCommand(subscribersAddCmd, subscribersRemoveCmd, subscribersListCmd)
	subscribersListCmd.Flags().Int("limit", 0, "Maximum number of subscribers to print (0 = all)")
}
