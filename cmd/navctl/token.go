package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cexll/sidebar/internal/auth"
)

func newTokenCmd(app *App) *cobra.Command {
	var secret, issuer, user string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:     "token",
		Short:   "Sign a bearer token for the preference server",
		Example: `  export NAV_TOKEN=$(navctl token --user u1 --roles admin)`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if user == "" {
				return writeErr(cmd, errors.New("--user is required"))
			}
			signer, err := auth.NewSigner(secret, issuer)
			if err != nil {
				return writeErr(cmd, err)
			}
			token, err := signer.Sign(auth.User{ID: user, Roles: app.Roles}, ttl)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&secret, "secret", envOr("JWT_SECRET", ""), "HMAC secret shared with the server")
	cmd.Flags().StringVar(&issuer, "issuer", envOr("JWT_ISSUER", "sidebar"), "Token issuer")
	cmd.Flags().StringVar(&user, "user", "", "User id (token subject)")
	cmd.Flags().DurationVar(&ttl, "ttl", auth.DefaultTTL, "Token lifetime")
	return cmd
}
