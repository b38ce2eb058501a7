// Command cli bootstraps an admin account. Regular accounts register over
// HTTP; admins are created from the shell on the database host.
package main

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/huanvu/gigmart/infra"
	infrarepo "github.com/huanvu/gigmart/infra/repository"
	"github.com/huanvu/gigmart/pkg/config"
	"github.com/huanvu/gigmart/pkg/domain/account"
	"github.com/huanvu/gigmart/pkg/repository"
)

func main() {
	if len(os.Args) < 2 || os.Args[1] != "create-admin" {
		fmt.Println("Usage: cli create-admin <username> <fullname> <email> <phone>")
		os.Exit(1)
	}
	if err := run(os.Args[2:]); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 4 {
		return fmt.Errorf("usage: cli create-admin <username> <fullname> <email> <phone>")
	}
	username, fullname, email, phone := args[0], args[1], args[2], args[3]

	password, err := promptPassword()
	if err != nil {
		return err
	}

	a, err := account.New(username, fullname, password, email, phone)
	if err != nil {
		return err
	}
	a.IsAdmin = true

	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	if err := infra.RunMigrations(db); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	uow := infrarepo.NewUoW(db)
	err = uow.Do(context.Background(), func(uow repository.UnitOfWork) error {
		return uow.Accounts().Create(context.Background(), a)
	})
	if err != nil {
		return err
	}

	color.Green("admin account %q created", username)
	return nil
}

func promptPassword() (string, error) {
	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	fmt.Print("Repeat password: ")
	again, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	if string(password) != string(again) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(password), nil
}
