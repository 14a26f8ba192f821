package app

import (
	"encoding/json"
	"errors"
	"fmt"
)

type CommandKind string

const (
	CommandStartMotion         CommandKind = "startMotion"
	CommandStartRandomMotion   CommandKind = "startRandomMotion"
	CommandSetExpression       CommandKind = "setExpression"
	CommandSetRandomExpression CommandKind = "setRandomExpression"
	CommandNextScene           CommandKind = "nextScene"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrQueueFull      = errors.New("command queue full")
)

// Command is a request from a host outside the frame loop.
type Command struct {
	Kind       CommandKind `json:"type"`
	Group      string      `json:"group,omitempty"`
	No         int         `json:"no,omitempty"`
	Priority   int         `json:"priority,omitempty"`
	Expression string      `json:"expression,omitempty"`
}

func (c Command) Validate() error {
	switch c.Kind {
	case CommandStartMotion, CommandStartRandomMotion:
		if c.Group == "" {
			return fmt.Errorf("%s: missing group", c.Kind)
		}
		if c.Priority < PriorityNone || c.Priority > PriorityForce {
			return fmt.Errorf("%s: priority %d out of range", c.Kind, c.Priority)
		}
		if c.No < 0 {
			return fmt.Errorf("%s: negative motion number", c.Kind)
		}
	case CommandSetExpression:
		if c.Expression == "" {
			return fmt.Errorf("%s: missing expression", c.Kind)
		}
	case CommandSetRandomExpression, CommandNextScene:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, c.Kind)
	}
	return nil
}

func DecodeCommand(data []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return Command{}, fmt.Errorf("decode command: %w", err)
	}
	if err := cmd.Validate(); err != nil {
		return Command{}, err
	}
	return cmd, nil
}

// CommandQueue hands commands from any goroutine to the frame loop.
type CommandQueue struct {
	commands chan Command
}

func NewCommandQueue(size int) *CommandQueue {
	return &CommandQueue{commands: make(chan Command, size)}
}

// Push never blocks, it fails with ErrQueueFull instead.
func (q *CommandQueue) Push(cmd Command) error {
	select {
	case q.commands <- cmd:
		return nil
	default:
		return ErrQueueFull
	}
}

// Drain calls fn for every queued command without waiting for new ones.
func (q *CommandQueue) Drain(fn func(Command)) {
	for {
		select {
		case cmd := <-q.commands:
			fn(cmd)
		default:
			return
		}
	}
}
