package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
)

// list prints every account in a table. Requires an admin session.
func (a *App) list(ctx context.Context) error {
	users, err := a.client.ListUsers(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tROLE\tENABLED")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", u.ID, u.Email, u.Role, u.AccountEnabled)
	}
	return w.Flush()
}

// setEnabled flips the enablement flag on the given account.
func (a *App) setEnabled(ctx context.Context, userID string, enabled bool) error {
	if err := a.client.SetAccountEnabled(ctx, userID, enabled); err != nil {
		return err
	}
	if enabled {
		fmt.Printf("Account %s enabled\n", userID)
	} else {
		fmt.Printf("Account %s disabled\n", userID)
	}
	return nil
}
