package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"users-manager/internal/accounts"
	"users-manager/internal/pager"
	"users-manager/internal/prompt"
	"users-manager/internal/theme"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

type StartConfig struct {
	ItemsPerPage   int
	CommandTimeout time.Duration
	Log            logrus.FieldLogger
}

type statusLevel int

const (
	statusInfo statusLevel = iota
	statusErr
)

type statusMessage struct {
	level statusLevel
	text  string
}

type flow int

const (
	flowNone flow = iota
	flowAdd
	flowDelete
)

// Steps of the add flow, in prompt order.
const (
	addUsername = iota
	addFullName
	addPassword
)

type operation int

const (
	opCreate operation = iota
	opDelete
	opLock
	opUnlock
)

func (o operation) verb() string {
	switch o {
	case opCreate:
		return "create"
	case opDelete:
		return "delete"
	case opLock:
		return "lock"
	default:
		return "unlock"
	}
}

func (o operation) past() string {
	switch o {
	case opCreate:
		return "created"
	case opDelete:
		return "deleted"
	case opLock:
		return "locked"
	default:
		return "unlocked"
	}
}

type accountsMsg struct {
	accounts []accounts.Account
	err      error
}

type mutationMsg struct {
	op       operation
	username string
	err      error
}

// dirOp is a queued directory call. Only one runs at a time.
type dirOp struct {
	refresh bool
	cmd     tea.Cmd
}

type model struct {
	styles theme.Styles
	spin   spinner.Model
	keys   keyMap

	width  int
	height int

	dir     accounts.Directory
	timeout time.Duration
	log     logrus.FieldLogger

	accounts []accounts.Account
	nav      pager.State
	status   statusMessage

	flow          flow
	step          int
	prompt        *prompt.Prompt
	draftUsername string
	draftFullName string
	pendingDelete accounts.Account

	queue    []dirOp
	inflight bool
	ticking  bool
	// quitting holds Q until queued directory calls finish.
	quitting bool
}

func Run(cfg StartConfig, dir accounts.Directory, output io.Writer) error {
	m := newModel(cfg, dir)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(output))
	_, err := p.Run()
	return err
}

func newModel(cfg StartConfig, dir accounts.Directory) *model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	timeout := cfg.CommandTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	log := cfg.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	return &model{
		styles:  theme.Dark(),
		spin:    sp,
		keys:    defaultKeyMap(),
		dir:     dir,
		timeout: timeout,
		log:     log,
		nav:     pager.New(cfg.ItemsPerPage),
	}
}

func (m *model) Init() tea.Cmd {
	return m.enqueue(m.refreshOp())
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		if !m.inflight {
			m.ticking = false
			break
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)

	case accountsMsg:
		m.inflight = false
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("refresh failed")
			m.status = statusMessage{level: statusErr, text: "Failed to load users."}
		} else {
			m.setAccounts(msg.accounts)
		}
		cmds = append(cmds, m.pump())

	case mutationMsg:
		m.inflight = false
		m.applyMutation(msg)
		cmds = append(cmds, m.enqueue(m.refreshOp()))

	case tea.KeyMsg:
		if m.quitting {
			break
		}
		if m.prompt != nil {
			cmds = append(cmds, m.handlePromptKey(msg))
		} else {
			cmds = append(cmds, m.handleKey(msg))
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.inflight || len(m.queue) > 0 {
			m.quitting = true
			return nil
		}
		return tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.nav.Move(1)
	case key.Matches(msg, m.keys.Up):
		m.nav.Move(-1)
	case key.Matches(msg, m.keys.NextPage):
		m.nav.ChangePage(1)
	case key.Matches(msg, m.keys.PrevPage):
		m.nav.ChangePage(-1)
	case key.Matches(msg, m.keys.Add):
		m.beginAdd()
		return nil
	case key.Matches(msg, m.keys.Delete):
		acct, ok := m.selectedAccount()
		if !ok {
			m.status = statusMessage{level: statusErr, text: "No user selected."}
			break
		}
		m.beginDelete(acct)
		return nil
	case key.Matches(msg, m.keys.Lock):
		acct, ok := m.selectedAccount()
		if !ok {
			m.status = statusMessage{level: statusErr, text: "No user selected."}
			break
		}
		return m.enqueue(m.mutationOp(opLock, acct.Username, func(ctx context.Context) error {
			return m.dir.Lock(ctx, acct.Username)
		}))
	case key.Matches(msg, m.keys.Unlock):
		acct, ok := m.selectedAccount()
		if !ok {
			m.status = statusMessage{level: statusErr, text: "No user selected."}
			break
		}
		return m.enqueue(m.mutationOp(opUnlock, acct.Username, func(ctx context.Context) error {
			return m.dir.Unlock(ctx, acct.Username)
		}))
	}

	return m.enqueue(m.refreshOp())
}

func (m *model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	if !m.prompt.Update(msg) {
		return nil
	}
	answer := m.prompt.Value()

	switch m.flow {
	case flowAdd:
		switch m.step {
		case addUsername:
			m.draftUsername = answer
			m.step = addFullName
			m.prompt = prompt.New("Enter full name: ", false)
			return nil
		case addFullName:
			m.draftFullName = answer
			m.step = addPassword
			m.prompt = prompt.New("Enter password: ", true)
			return nil
		}

		username, fullName, password := m.draftUsername, m.draftFullName, answer
		m.endFlow()
		return m.enqueue(m.mutationOp(opCreate, username, func(ctx context.Context) error {
			return m.dir.Create(ctx, username, fullName, password)
		}))

	case flowDelete:
		acct := m.pendingDelete
		m.endFlow()
		if !strings.EqualFold(answer, "y") {
			m.status = statusMessage{level: statusInfo, text: "Deletion cancelled."}
			return m.enqueue(m.refreshOp())
		}
		return m.enqueue(m.mutationOp(opDelete, acct.Username, func(ctx context.Context) error {
			return m.dir.Delete(ctx, acct.Username)
		}))
	}

	m.endFlow()
	return nil
}

func (m *model) beginAdd() {
	m.flow = flowAdd
	m.step = addUsername
	m.draftUsername, m.draftFullName = "", ""
	m.prompt = prompt.New("Enter username: ", false)
}

func (m *model) beginDelete(acct accounts.Account) {
	m.flow = flowDelete
	m.pendingDelete = acct
	m.prompt = prompt.New(fmt.Sprintf("Are you sure you want to delete %s? (y/n): ", acct.Username), false)
}

func (m *model) endFlow() {
	m.flow = flowNone
	m.step = 0
	m.prompt = nil
	m.draftUsername, m.draftFullName = "", ""
	m.pendingDelete = accounts.Account{}
}

func (m *model) applyMutation(msg mutationMsg) {
	log := m.log.WithFields(logrus.Fields{"operation": msg.op.verb(), "username": msg.username})
	if msg.err != nil {
		log.WithError(msg.err).Warn("account operation failed")
		m.status = statusMessage{level: statusErr, text: fmt.Sprintf("Failed to %s user %s.", msg.op.verb(), msg.username)}
		return
	}
	log.Info("account operation succeeded")
	m.status = statusMessage{level: statusInfo, text: fmt.Sprintf("User %s %s successfully.", msg.username, msg.op.past())}
}

func (m *model) setAccounts(list []accounts.Account) {
	m.accounts = list
	m.nav.Resize(len(list))
}

func (m *model) selectedAccount() (accounts.Account, bool) {
	if !m.nav.HasSelection() || m.nav.Selected >= len(m.accounts) {
		return accounts.Account{}, false
	}
	return m.accounts[m.nav.Selected], true
}

// enqueue adds a directory call behind any in flight. Refreshes coalesce
// while one is already waiting.
func (m *model) enqueue(op dirOp) tea.Cmd {
	if op.refresh && m.quitting {
		return m.pump()
	}
	if op.refresh {
		for _, queued := range m.queue {
			if queued.refresh {
				return m.pump()
			}
		}
	}
	m.queue = append(m.queue, op)
	return m.pump()
}

func (m *model) pump() tea.Cmd {
	if m.inflight {
		return nil
	}
	if len(m.queue) == 0 {
		if m.quitting {
			return tea.Quit
		}
		return nil
	}
	op := m.queue[0]
	m.queue = m.queue[1:]
	m.inflight = true

	cmds := []tea.Cmd{op.cmd}
	if !m.ticking {
		m.ticking = true
		cmds = append(cmds, m.spin.Tick)
	}
	return tea.Batch(cmds...)
}

func (m *model) refreshOp() dirOp {
	dir, timeout := m.dir, m.timeout
	return dirOp{refresh: true, cmd: func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		list, err := dir.List(ctx)
		return accountsMsg{accounts: list, err: err}
	}}
}

func (m *model) mutationOp(op operation, username string, fn func(context.Context) error) dirOp {
	timeout := m.timeout
	return dirOp{cmd: func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return mutationMsg{op: op, username: username, err: fn(ctx)}
	}}
}
