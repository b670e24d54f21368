package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/sw33tLie/freedrops/pkg/storage"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Print every title ever seen, grouped by month",
	RunE: func(cmd *cobra.Command, args []string) error {
		month, _ := cmd.Flags().GetString("month")
		archive := storage.New(dataDir(cmd)).LoadArchive()

		months := make([]string, 0, len(archive))
		for m := range archive {
			if month == "" || m == month {
				months = append(months, m)
			}
		}
		sort.Strings(months)

		for _, m := range months {
			fmt.Printf("%s (%d)\n", m, len(archive[m]))
			for _, title := range archive[m] {
				fmt.Printf("  %s\n", title)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.Flags().String("month", "", "Only print this month (YYYY-MM)")
}
