package main

import (
	"context"
	"fmt"

	agentapi "github.com/beka-birhanu/vinom-qlearn/api/agent"
	"github.com/beka-birhanu/vinom-qlearn/config"
	dmn "github.com/beka-birhanu/vinom-qlearn/domain"
	"github.com/spf13/cobra"
)

func trainCommand() *cobra.Command {
	var params dmn.TrainingParams
	var backend string

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Run one training call and print the learned policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			initAppLogger()
			cfg = config.Load()
			if !cmd.Flags().Changed("backend") {
				backend = cfg.StoreBackend
			}

			ctx := context.Background()
			initBackend(ctx, backend)
			defer closeBackend(ctx)
			initTrainer()
			initAgent()

			run, err := trainer.Train(ctx, params)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run %s\n", run.ID)
			fmt.Fprintf(out, "  episodes=%d max_steps=%d epsilon=%d alpha=%d gamma=%d\n",
				run.Applied.Episodes, run.Applied.MaxSteps, run.Applied.Epsilon, run.Applied.Alpha, run.Applied.Gamma)
			fmt.Fprintf(out, "  steps=%d goals=%d updates=%d overflows=%d took=%s\n",
				run.TotalSteps, run.GoalsReached, run.Updates, run.Overflows, run.Duration)

			layout, err := agentService.Render(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(out, layout)

			path, err := agentService.Path(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "greedy path: %d steps, reached goal: %t (%s)\n", len(path.Steps), path.ReachedGoal, path.EndReason)
			return nil
		},
	}
	cmd.PersistentFlags().Uint64Var(&params.Episodes, "episodes", agentapi.DefaultEpisodes, "Number of episodes (at most 1000)")
	cmd.PersistentFlags().Uint64Var(&params.MaxSteps, "max-steps", agentapi.DefaultMaxSteps, "Steps per episode (at most 100)")
	cmd.PersistentFlags().Uint64Var(&params.Epsilon, "epsilon", agentapi.DefaultEpsilon, "Exploration rate in 1/10000")
	cmd.PersistentFlags().Uint64Var(&params.Alpha, "alpha", agentapi.DefaultAlpha, "Learning rate in 1/10000")
	cmd.PersistentFlags().Uint64Var(&params.Gamma, "gamma", agentapi.DefaultGamma, "Discount factor in 1/10000")
	cmd.PersistentFlags().StringVar(&backend, "backend", config.BackendMemory, "Q-table store: memory, redis or mongo")
	return cmd
}
