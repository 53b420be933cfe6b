package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (c *cli) newLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("password") {
				var err error
				if password, err = c.readPassword(cmd); err != nil {
					return err
				}
			}

			a := c.newApp(cmd)
			defer a.Close()
			if _, err := a.Restore(); err != nil {
				return err
			}

			a.SetLoginForm(username, password)

			sess, err := a.Login(cmd.Context())
			if err != nil {
				if a.Notification() != "" {
					return errReported
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s logged in\n", sess.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted for when omitted)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

// readPassword prompts without echo on a terminal and otherwise reads one
// line from stdin.
func (c *cli) readPassword(cmd *cobra.Command) (string, error) {
	if f, ok := c.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(c.stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *cli) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.newApp(cmd)
			defer a.Close()
			return a.Logout()
		},
	}
}

func (c *cli) newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.newApp(cmd)
			defer a.Close()

			if _, err := a.Restore(); err != nil {
				return err
			}
			sess, ok := a.User()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", sess.Name, sess.Username)
			return nil
		},
	}
}
