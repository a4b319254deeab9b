package main

import (
	"errors"
	"fmt"
	"os"

	"users-manager/cmd"
	"users-manager/internal/accounts"
)

// Exit code for missing privileges, from sysexits.h EX_NOPERM.
const exitNoPerm = 77

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "users-manager:", err)
		if errors.Is(err, accounts.ErrInsufficientPrivilege) {
			os.Exit(exitNoPerm)
		}
		os.Exit(1)
	}
}
