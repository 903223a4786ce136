package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Osisami00/Nelfund-Project/internal/history"
	"github.com/Osisami00/Nelfund-Project/internal/identity"
	"github.com/Osisami00/Nelfund-Project/internal/model"
	"github.com/Osisami00/Nelfund-Project/internal/remote"
	"github.com/Osisami00/Nelfund-Project/internal/session"
)

func chatCmd() *cobra.Command {
	var (
		phoneFlag   string
		countryFlag string
		nameFlag    string
		guestFlag   bool
	)
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: "Starts a chat session as the active identity. Pass --phone to log in " +
			"(with --name to register a new number) or --guest for an ephemeral session.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, st, err := openState()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			ids := identity.New(st)
			if countryFlag == "" {
				countryFlag = cfg.DefaultCountryCode
			}
			user, err := resolveUser(ctx, ids, phoneFlag, countryFlag, nameFlag, guestFlag)
			if err != nil {
				return err
			}

			client, err := remote.New(cfg.APIBaseURL, remote.WithHTTPTimeout(cfg.HTTPTimeout))
			if err != nil {
				return err
			}

			sess := session.New(user, history.New(st), client, log)
			if err := sess.Start(ctx); err != nil {
				return err
			}
			if sess.Degraded() {
				fmt.Println("(backend unreachable, answers come from cached guidance)")
			}
			printTranscript(sess)
			return repl(ctx, sess)
		},
	}
	cmd.Flags().StringVarP(&phoneFlag, "phone", "p", "", "Phone number to log in or register with")
	cmd.Flags().StringVarP(&countryFlag, "country", "c", "", "Country calling code (default from config)")
	cmd.Flags().StringVarP(&nameFlag, "name", "n", "", "Full name (registers the phone if unknown)")
	cmd.Flags().BoolVarP(&guestFlag, "guest", "g", false, "Chat without registering")
	return cmd
}

// resolveUser picks the identity for this session: explicit guest, explicit
// phone (logging in, registering when unknown and a name was given), or the
// persisted active identity.
func resolveUser(ctx context.Context, ids *identity.Service, phone, country, name string, guest bool) (*model.User, error) {
	if guest {
		return ids.GuestLogin(ctx)
	}
	if phone != "" {
		u, err := ids.Login(ctx, phone, country)
		if errors.Is(err, model.ErrPhoneNotFound) && name != "" {
			return ids.Register(ctx, phone, country, name)
		}
		if errors.Is(err, model.ErrPhoneNotFound) {
			return nil, fmt.Errorf("%s is not registered; pass --name to register it", phone)
		}
		return u, err
	}
	u, err := ids.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errors.New("no active identity; pass --phone, or --guest to chat anonymously")
	}
	return u, nil
}

func repl(ctx context.Context, sess *session.Session) error {
	fmt.Println("Type a question, or /reset, /history, /reconnect, /quit.")
	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			continue
		case line == "/quit":
			return nil
		case line == "/reset":
			if err := sess.Reset(ctx); err != nil {
				return err
			}
			printTranscript(sess)
		case line == "/history":
			printTranscript(sess)
		case line == "/reconnect":
			if !sess.Degraded() {
				fmt.Println("already connected")
				continue
			}
			fmt.Println("probing backend...")
			if err := sess.Reconnect(ctx); err != nil {
				fmt.Printf("still unreachable: %v\n", err)
				continue
			}
			fmt.Println("reconnected")
		default:
			reply, err := sess.Submit(ctx, line)
			if err != nil {
				return err
			}
			printMessage(reply)
		}
	}
}

func printTranscript(sess *session.Session) {
	for _, g := range sess.GroupByDate() {
		fmt.Printf("--- %s ---\n", g.Date.Format("Monday, 2 January 2006"))
		for i := range g.Messages {
			printMessage(&g.Messages[i])
		}
	}
}

func printMessage(m *model.Message) {
	who := "you"
	if m.Sender == model.SenderAssistant {
		who = "nelfi"
	}
	tag := ""
	if m.IsFallback {
		tag = " [offline]"
	}
	fmt.Printf("%s %s%s: %s\n", m.Timestamp.Local().Format("15:04"), who, tag, m.Text)
	for _, c := range m.Citations {
		fmt.Printf("         source: %s, %s\n", c.Document, c.Section)
	}
}
