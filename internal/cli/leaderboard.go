package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSubmitCmd() *cobra.Command {
	var userID string
	var name string

	cmd := &cobra.Command{
		Use:   "submit <count>",
		Short: "Submit an invite count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				return fmt.Errorf("--user is required")
			}
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			req := map[string]string{
				"user_id":      userID,
				"display_name": name,
				"invites":      args[0],
			}
			var result SubmissionResult

			if err := client.Post("/api/v1/submissions", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Participant id")
	cmd.Flags().StringVar(&name, "name", "", "Display name")

	return cmd
}

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the current standings",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LeaderboardResult

			if err := client.Get("/api/v1/leaderboard", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result StatsResult

			if err := client.Get("/api/v1/stats", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "user <user_id>",
		Short: "Look up a participant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result UserResult

			if err := client.Get("/api/v1/users/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HealthResult

			if err := client.Get("/api/v1/health", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
