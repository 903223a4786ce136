package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Osisami00/Nelfund-Project/internal/config"
	"github.com/Osisami00/Nelfund-Project/internal/identity"
	"github.com/Osisami00/Nelfund-Project/internal/remote"
)

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the active identity's conversation, locally and remotely",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, st, err := openState()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			user, err := identity.New(st).CurrentUser(ctx)
			if err != nil {
				return err
			}
			if user == nil {
				return fmt.Errorf("no active identity to reset")
			}

			if !user.IsGuest && user.Phone != nil {
				client, err := remote.New(cfg.APIBaseURL, remote.WithHTTPTimeout(cfg.HTTPTimeout))
				if err != nil {
					return err
				}
				if _, err := client.ResetSession(ctx, *user.Phone); err != nil {
					log.Warn().Err(err).Msg("remote reset failed, clearing local transcript anyway")
				}
			}
			if err := st.Transcripts().Clear(ctx, user.ID); err != nil {
				return err
			}
			fmt.Println("conversation cleared")
			return nil
		},
	}
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the active identity (directory entries are kept)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := openState()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			if err := identity.New(st).Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("logged out")
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show backend status and session statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New()
			if err != nil {
				return err
			}
			client, err := remote.New(cfg.APIBaseURL, remote.WithHTTPTimeout(cfg.HTTPTimeout))
			if err != nil {
				return err
			}
			st, err := client.Status(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("status:          %s\n", st.Status)
			fmt.Printf("agent:           %s\n", st.Agent)
			fmt.Printf("active sessions: %d\n", st.SessionsActive)
			fmt.Printf("total messages:  %d\n", st.TotalMessages)
			return nil
		},
	}
}
