package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hookchat/hookchat/internal/conversation"
)

// ErrSignedOut is returned by commands that need a session
var ErrSignedOut = errors.New("not signed in; run 'hookchat login' first")

var sendCmd = &cobra.Command{
	Use:   "send <text...>",
	Short: "Send one message to the webhook and print the reply",
	Long: `Sends the arguments, joined by spaces, as a single message and prints the
bot's reply. Requires a signed-in session. On failure the error reply is
printed to stderr and the command exits non-zero.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx := cmd.Context()
	svc.session.Hydrate(ctx)
	if !svc.session.IsAuthenticated() {
		return ErrSignedOut
	}

	ctrl := conversation.New(svc.client, conversation.WithNotifier(conversation.NotifierFunc(func(text string) {
		fmt.Fprintln(cmd.ErrOrStderr(), text)
	})))

	reply, err := ctrl.Submit(ctx, strings.Join(args, " "))
	switch {
	case errors.Is(err, conversation.ErrEmptyInput):
		return errors.New("nothing to send")
	case err != nil:
		fmt.Fprintln(cmd.ErrOrStderr(), reply.Text)
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
	return nil
}
