package config

import "fmt"

// ButtonID represents a logical button sampled from the input device.
type ButtonID int

const (
	ButtonNone ButtonID = iota
	ButtonInteract
	ButtonAttack
	ButtonCancel
	ButtonCount // Must be last - used for array sizing
)

var buttonNames = [ButtonCount]string{
	ButtonNone:     "none",
	ButtonInteract: "interact",
	ButtonAttack:   "attack",
	ButtonCancel:   "cancel",
}

func (b ButtonID) String() string {
	if b >= 0 && b < ButtonCount {
		return buttonNames[b]
	}
	return fmt.Sprintf("ButtonID(%d)", int(b))
}

// ParseButton maps a config name to a ButtonID. An empty name is ButtonInteract.
func ParseButton(name string) (ButtonID, error) {
	if name == "" {
		return ButtonInteract, nil
	}
	for i, n := range buttonNames {
		if n == name {
			return ButtonID(i), nil
		}
	}
	return ButtonNone, fmt.Errorf("unknown button %q", name)
}
