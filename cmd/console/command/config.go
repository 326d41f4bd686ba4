package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

type Config struct {
	Console   ConsoleConfig    `json:"console"`
	Listeners []ListenerConfig `json:"listeners"`
	Storage   StorageConfig    `json:"storage"`
	Nats      NatsConfig       `json:"nats"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	el.Add(c.Console.validate())

	for i, l := range c.Listeners {
		if err := l.validate(); err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.Storage.validate())
	el.Add(c.Nats.validate())

	if !c.Console.Stdio && len(c.Listeners) == 0 {
		el.Add(fmt.Errorf("nothing to serve: enable console.stdio or configure a listener"))
	}

	return el.Err()
}

const defaultQueueCapacity = 32

type ConsoleConfig struct {
	Stdio         bool `json:"stdio"`
	QueueCapacity int  `json:"queue_capacity"`
}

func (c *ConsoleConfig) validate() error {
	el := errors.NewErrorList()

	if c.QueueCapacity < 0 {
		el.Add(fmt.Errorf("queue_capacity must not be negative"))
	}

	return el.Err()
}

func (c *ConsoleConfig) queueCapacity() int {
	if c.QueueCapacity == 0 {
		return defaultQueueCapacity
	}
	return c.QueueCapacity
}
