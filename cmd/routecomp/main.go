// Command routecomp runs the whole pipeline: it eulerizes the input graphs,
// builds an Eulerian route, and prints the loaded data, totals, and an
// example route.
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
		showEdge bool
	)
	cmd := &cobra.Command{
		Use:           "routecomp [flags] FILE...",
		Short:         "compute a minimum-cost traversal covering every edge",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			task := route.NewTask()
			if listFile != "" {
				return task.RunFromList(listFile, start, goal, showEdge)
			}

			return task.Run(args, start, goal, showEdge)
		},
	}
	cmd.Flags().StringVarP(&start, "start", "s", "", "start vertex name")
	cmd.Flags().StringVarP(&goal, "goal", "g", "", "goal vertex name")
	cmd.Flags().StringVarP(&listFile, "listfile", "l", "", "file listing data files, one path per line (positional FILEs are ignored)")
	cmd.Flags().BoolVar(&showEdge, "show_edge", false, "list every traversed edge")

	if err := cmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("route computation failed")
		os.Exit(1)
	}
}
