// Package action holds the fixed set of power-session actions and their static metadata.
package action

import "strings"

type Action uint8

const (
	Lock Action = iota
	Logout
	Poweroff
	Reboot
	Suspend
	Hibernate
)

// Count is the number of actions in the registry.
const Count = 6

// All returns every action in registry order.
func All() []Action {
	return []Action{Lock, Logout, Poweroff, Reboot, Suspend, Hibernate}
}

func (a Action) Valid() bool {
	return a < Count
}

// Name is the config section name for the action.
func (a Action) Name() string {
	switch a {
	case Lock:
		return "lock"
	case Logout:
		return "logout"
	case Poweroff:
		return "poweroff"
	case Reboot:
		return "reboot"
	case Suspend:
		return "suspend"
	case Hibernate:
		return "hibernate"
	default:
		return ""
	}
}

func (a Action) String() string {
	if name := a.Name(); name != "" {
		return name
	}
	return "unknown"
}

func (a Action) Title() string {
	switch a {
	case Lock:
		return "Lock"
	case Logout:
		return "Log out"
	case Poweroff:
		return "Power off"
	case Reboot:
		return "Reboot"
	case Suspend:
		return "Suspend"
	case Hibernate:
		return "Hibernate"
	default:
		return ""
	}
}

func (a Action) Description() string {
	switch a {
	case Lock:
		return "Lock the session screen"
	case Logout:
		return "Terminate the session"
	case Poweroff:
		return "Shut down the system"
	case Reboot:
		return "Restart the system"
	case Suspend:
		return "Suspend the system to RAM"
	case Hibernate:
		return "Suspend the system to disk"
	default:
		return ""
	}
}

// Icon is a freedesktop icon-theme name.
func (a Action) Icon() string {
	switch a {
	case Lock:
		return "system-lock-screen"
	case Logout:
		return "system-log-out"
	case Poweroff:
		return "system-shutdown"
	case Reboot:
		return "system-reboot"
	case Suspend:
		return "system-suspend"
	case Hibernate:
		return "system-suspend-hibernate"
	default:
		return ""
	}
}

// DefaultCommand returns a fresh copy of the built-in command tokens.
func (a Action) DefaultCommand() []string {
	switch a {
	case Lock:
		return []string{"loginctl", "lock-session"}
	case Logout:
		return []string{"loginctl", "terminate-user", "$USER"}
	case Poweroff:
		return []string{"systemctl", "-i", "poweroff"}
	case Reboot:
		return []string{"systemctl", "-i", "reboot"}
	case Suspend:
		return []string{"systemctl", "-i", "suspend"}
	case Hibernate:
		return []string{"systemctl", "-i", "hibernate"}
	default:
		return nil
	}
}

func (a Action) DefaultConfirm() bool {
	switch a {
	case Logout, Poweroff, Reboot:
		return true
	default:
		return false
	}
}

// Parse maps a config section name back to its action.
func Parse(name string) (Action, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, a := range All() {
		if a.Name() == normalized {
			return a, true
		}
	}
	return 0, false
}

// Names lists the config section names in registry order.
func Names() []string {
	names := make([]string, 0, Count)
	for _, a := range All() {
		names = append(names, a.Name())
	}
	return names
}
