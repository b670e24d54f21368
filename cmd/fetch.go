package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/sw33tLie/freedrops/pkg/polling"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <source>",
	Short: "Fetch a single source and print its normalized offers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := httpClient(cmd)
		if err != nil {
			return err
		}
		src := newSource(args[0], client)
		if src == nil {
			return fmt.Errorf("unknown source %q", args[0])
		}

		list, err := polling.FetchOne(cmd.Context(), src)
		if err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(list)
		}
		for _, o := range list {
			fmt.Printf("%s | %s | %s\n", o.Title, o.Status, firstNonEmpty(o.Link, o.CTA))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().Bool("json", false, "Print offers as JSON")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
