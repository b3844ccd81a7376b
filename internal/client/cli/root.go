package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	user := a.client.CurrentUser()
	if user == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", user.Email)
}

func (a *App) Run(ctx context.Context) {

	log.Println("Welcome to labctl (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	a.Login(ctx)

	for {
		fmt.Printf("labctl %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		if err := a.dispatch(ctx, cmd, args); err != nil {
			fmt.Println("Error:", err)
		}

		if cmd == "exit" || cmd == "quit" {
			return
		}
	}

}

func (a *App) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			fmt.Println("Available commands: list, enable <id>, disable <id>, whoami, logout, exit")
		} else {
			fmt.Println("Available commands: login, exit")
		}
		return nil

	case "login":
		return a.Login(ctx)

	case "logout":
		return a.Logout(ctx)

	case "whoami":
		user := a.client.CurrentUser()
		if user == nil {
			fmt.Println("Not logged in")
			return nil
		}
		fmt.Printf("%s %s <%s> role=%s\n", user.FirstName, user.LastName, user.Email, user.Role)
		return nil

	case "list":
		return a.list(ctx)

	case "enable":
		if len(args) == 0 {
			fmt.Println("Usage: enable <id>")
			return nil
		}
		return a.setEnabled(ctx, args[0], true)

	case "disable":
		if len(args) == 0 {
			fmt.Println("Usage: disable <id>")
			return nil
		}
		return a.setEnabled(ctx, args[0], false)

	case "exit", "quit":
		fmt.Println("Bye!")
		return nil

	default:
		fmt.Println("Unknown command:", cmd)
		return nil
	}
}
