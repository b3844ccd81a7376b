package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/saschasalles/LabPlatformAPI/internal/client/api"
	"github.com/saschasalles/LabPlatformAPI/internal/shared"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for an email and password and opens a session. The password
// byte slice is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	if err := a.client.Login(ctx, email, password); err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			log.Printf("Server unavailable: %s", err.Error())
			return err
		}
		log.Printf("Login unsuccessfull: %s", err.Error())
		return err
	}

	user := a.client.CurrentUser()
	fmt.Printf("Logged in as %s (%s)\n", user.Email, user.Role)
	return nil
}

// Logout revokes the session token on the server.
func (a *App) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}
