// Command gen_eulerian_route prints the visited node sequence of an
// Eulerian route over an already-Eulerian input graph.
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
		start string
		goal  string
	)
	cmd := &cobra.Command{
		Use:           "gen_eulerian_route [flags] FILE...",
		Short:         "generate an Eulerian route over an Eulerian input graph",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return route.NewTask().GenEulerianRoute(args, start, goal)
		},
	}
	cmd.Flags().StringVarP(&start, "start", "s", "", "start vertex name")
	cmd.Flags().StringVarP(&goal, "goal", "g", "", "goal vertex name")

	if err := cmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("eulerian route generation failed")
		os.Exit(1)
	}
}
