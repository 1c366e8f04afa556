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

	"bookCatalog/internal/auth"
	"bookCatalog/internal/storage"
	"bookCatalog/internal/user"
	"bookCatalog/package/logger"
)

func newUserAddCmd() *cobra.Command {
	var email, name string
	cmd := &cobra.Command{
		Use:   "useradd",
		Short: "Register a user; the password is read from the terminal or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			password, err := readPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			st, err := storage.Open(ctx, cfg.Storage)
			if err != nil {
				return err
			}
			defer st.Close()

			tokens := auth.NewTokenService(cfg.Key.SecretKey, cfg.Key.TTL)
			u, err := user.NewService(st.Users, tokens).Register(ctx, user.RegisterRequest{
				Email:    email,
				Password: password,
				Name:     name,
			})
			if err != nil {
				return err
			}
			logger.Log.WithField("user_id", u.ID).Info("User is created")
			fmt.Fprintln(cmd.OutOrStdout(), u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "user email")
	cmd.Flags().StringVar(&name, "name", "", "user display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// readPassword prompts without echo on a terminal, otherwise reads one line.
func readPassword(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Password: ")
		pw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(pw), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
