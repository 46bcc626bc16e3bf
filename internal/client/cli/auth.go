package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for a name, email, and password and attempts to
// create a new account. On success the client is logged in as the new
// account and the item list is primed.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	s, err := a.authService.Register(ctx, name, email, password)
	if err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	fmt.Printf("Registered as %s\n", s.Email)
	return a.Refresh(ctx)
}

// Login prompts the user for credentials and tries to authenticate. On
// success the session is persisted and the item list is primed.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	s, err := a.authService.Login(ctx, email, password)
	if err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	fmt.Printf("Logged in as %s\n", s.Email)
	return a.Refresh(ctx)
}

// Logout removes the persisted session and clears the cached item list.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(); err != nil {
		log.Printf("Logout failed: %s", err.Error())
		return err
	}
	a.clearItems()
	fmt.Println("Logged out")
	return nil
}
