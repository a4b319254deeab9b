package accounts

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	DefaultMinUID = 1000
	// DefaultMaxUID is exclusive and keeps nobody (65534) out of the list.
	DefaultMaxUID = 65534
)

// System is a Directory backed by the shadow-utils commands.
type System struct {
	runner Runner
	minUID int
	maxUID int
	log    logrus.FieldLogger
}

// NewSystem lists accounts with minUID <= uid < maxUID.
func NewSystem(runner Runner, minUID, maxUID int, log logrus.FieldLogger) *System {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &System{runner: runner, minUID: minUID, maxUID: maxUID, log: log}
}

func (s *System) List(ctx context.Context) ([]Account, error) {
	res, err := s.runner.Run(ctx, Command{Name: "getent", Args: []string{"passwd"}})
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	entries := parsePasswd(res.Stdout)
	accounts := make([]Account, 0, len(entries))
	for _, e := range entries {
		if e.UID < s.minUID || e.UID >= s.maxUID {
			continue
		}
		accounts = append(accounts, Account{
			Username: e.Name,
			FullName: fullName(e.Gecos),
			Locked:   s.isLocked(ctx, e.Name),
		})
	}
	return accounts, nil
}

// isLocked reads the status column of passwd -S. A failed query counts as
// unlocked.
func (s *System) isLocked(ctx context.Context, username string) bool {
	res, err := s.runner.Run(ctx, Command{Name: "passwd", Args: []string{"-S", "--", username}})
	if err != nil {
		s.log.WithField("username", username).WithError(err).Debug("lock status query failed")
		return false
	}
	fields := strings.Fields(res.Stdout)
	if len(fields) < 2 {
		return false
	}
	return strings.Contains(fields[1], "L")
}

func (s *System) Create(ctx context.Context, username, fullName, password string) error {
	if err := s.run(ctx, "create", username, Command{
		Name: "useradd",
		Args: []string{"-m", "-c", fullName, "--", username},
	}); err != nil {
		return err
	}
	return s.run(ctx, "set password", username, Command{
		Name:  "chpasswd",
		Stdin: username + ":" + password + "\n",
	})
}

func (s *System) Delete(ctx context.Context, username string) error {
	return s.run(ctx, "delete", username, Command{Name: "userdel", Args: []string{"-r", "--", username}})
}

func (s *System) Lock(ctx context.Context, username string) error {
	return s.run(ctx, "lock", username, Command{Name: "usermod", Args: []string{"-L", "--", username}})
}

func (s *System) Unlock(ctx context.Context, username string) error {
	return s.run(ctx, "unlock", username, Command{Name: "usermod", Args: []string{"-U", "--", username}})
}

func (s *System) run(ctx context.Context, op, username string, cmd Command) error {
	log := s.log.WithFields(logrus.Fields{"username": username, "command": cmd.Name})

	res, err := s.runner.Run(ctx, cmd)
	if err != nil {
		log.WithFields(logrus.Fields{
			"exit_code": res.ExitCode,
			"stderr":    strings.TrimSpace(res.Stderr),
		}).WithError(err).Warn(op + " failed")
		return fmt.Errorf("%s %q: %w", op, username, err)
	}

	log.Info(op + " succeeded")
	return nil
}

type passwdEntry struct {
	Name  string
	UID   int
	GID   int
	Gecos string
	Home  string
	Shell string
}

// parsePasswd reads passwd(5) lines, skipping blank and malformed ones.
func parsePasswd(out string) []passwdEntry {
	var entries []passwdEntry
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ":")
		if len(parts) < 7 {
			continue
		}

		uid, err := strconv.Atoi(parts[2])
		if err != nil {
			continue
		}
		gid, _ := strconv.Atoi(parts[3])

		entries = append(entries, passwdEntry{
			Name:  parts[0],
			UID:   uid,
			GID:   gid,
			Gecos: parts[4],
			Home:  parts[5],
			Shell: parts[6],
		})
	}
	return entries
}

// fullName is the first comma-separated GECOS field.
func fullName(gecos string) string {
	name, _, _ := strings.Cut(gecos, ",")
	return name
}
