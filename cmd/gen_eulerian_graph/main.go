// Command gen_eulerian_graph eulerizes the graphs described by the given
// data files and prints the resulting edge list and transfer declarations.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/postway/route"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	var (
		start    string
		goal     string
		listFile string
	)
	cmd := &cobra.Command{
		Use:           "gen_eulerian_graph [flags] FILE...",
		Short:         "generate a (semi-)Eulerian graph by minimum-cost edge duplication",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			task := route.NewTask()
			if listFile != "" {
				return task.GenEulerianGraphFromList(listFile, start, goal)
			}

			return task.GenEulerianGraph(args, start, goal)
		},
	}
	cmd.Flags().StringVarP(&start, "start", "s", "", "start vertex name")
	cmd.Flags().StringVarP(&goal, "goal", "g", "", "goal vertex name")
	cmd.Flags().StringVarP(&listFile, "listfile", "l", "", "file listing data files, one path per line (positional FILEs are ignored)")

	if err := cmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("eulerian graph generation failed")
		os.Exit(1)
	}
}
