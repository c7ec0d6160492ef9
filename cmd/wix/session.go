package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/n0ko/wix-tui/internal/client"
	"github.com/n0ko/wix-tui/internal/store"
	"github.com/n0ko/wix-tui/internal/ui"
)

var loginPhone string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with an already registered phone number",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Long: `Removes the stored user so the next launch starts registration again.
The remote account is not touched.`,
	RunE: runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVar(&loginPhone, "phone", "", "Registered phone number")
	_ = loginCmd.MarkFlagRequired("phone")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	user, err := client.New(cfg.Endpoints).Login(ctx, loginPhone)
	if err != nil {
		return fmt.Errorf("login failed: %s", client.UserMessage(err, "Login failed"))
	}
	if err := st.SaveUser(user); err != nil {
		return fmt.Errorf("error saving session: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as @%s.\n", user.Username)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	cfg, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if !st.HasUser() {
		fmt.Fprintln(cmd.OutOrStdout(), "No stored session.")
		return nil
	}
	if err := st.ClearUser(); err != nil {
		return fmt.Errorf("error clearing session: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Session cleared. Run wix to register again.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	cfg, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	user, err := st.LoadUser()
	if err != nil {
		return fmt.Errorf("error reading session: %w", err)
	}
	out := cmd.OutOrStdout()
	if user == nil {
		fmt.Fprintln(out, "Not signed in.")
		return nil
	}
	renderUser(out, user)
	return nil
}

// renderUser writes the user as a two-column table
func renderUser(w io.Writer, user *store.User) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Field", "Value"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	premium := "no"
	if user.IsPremium {
		premium = "yes"
	}
	table.AppendBulk([][]string{
		{"ID", strconv.FormatInt(user.ID, 10)},
		{"Phone", user.Phone},
		{"Nickname", user.Nickname},
		{"Username", "@" + user.Username},
		{"Avatar", ui.AvatarLabel(user.Avatar)},
		{"Premium", premium},
		{"Share", ui.ShareURL(user.Username)},
	})
	table.Render()
}
