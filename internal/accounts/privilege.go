package accounts

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// ErrInsufficientPrivilege means the process cannot manage accounts.
var ErrInsufficientPrivilege = errors.New("root privileges are required to manage user accounts")

// geteuid is swapped in tests.
var geteuid = os.Geteuid

// CheckPrivilege runs once before the UI starts. Root passes outright. With
// sudo enabled, a non-interactive `sudo -n true` must succeed.
func CheckPrivilege(ctx context.Context, runner Runner, sudo bool) error {
	if geteuid() == 0 {
		return nil
	}
	if !sudo {
		return ErrInsufficientPrivilege
	}
	if _, err := runner.Run(ctx, Command{Name: "true"}); err != nil {
		return fmt.Errorf("%w: sudo -n failed: %v", ErrInsufficientPrivilege, err)
	}
	return nil
}
