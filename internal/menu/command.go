package menu

// Command is one menu action.
type Command int

const (
	CommandUnknown Command = iota
	CommandCreateUser
	CommandCreateAccount
	CommandDeposit
	CommandWithdraw
	CommandTransfer
	CommandStatement
	CommandExportStatement
	CommandListAccounts
	CommandExit
)

type commandEntry struct {
	token   string
	command Command
	label   string
}

// commandTable is the only mapping from input tokens to commands, in menu order.
var commandTable = []commandEntry{
	{"1", CommandCreateUser, "Create user"},
	{"2", CommandCreateAccount, "Create account"},
	{"3", CommandDeposit, "Deposit"},
	{"4", CommandWithdraw, "Withdraw"},
	{"5", CommandTransfer, "Transfer"},
	{"6", CommandStatement, "Statement"},
	{"7", CommandExportStatement, "Export statement"},
	{"8", CommandListAccounts, "List accounts"},
	{"0", CommandExit, "Exit"},
}

// ParseCommand maps an input token to its Command, or CommandUnknown.
func ParseCommand(token string) Command {
	for _, e := range commandTable {
		if e.token == token {
			return e.command
		}
	}
	return CommandUnknown
}

func (c Command) String() string {
	for _, e := range commandTable {
		if e.command == c {
			return e.label
		}
	}
	return "Unknown"
}

// Choices returns the menu entries in display order.
func Choices() []Option {
	opts := make([]Option, len(commandTable))
	for i, e := range commandTable {
		opts[i] = Option{Key: e.token, Label: e.label}
	}
	return opts
}
