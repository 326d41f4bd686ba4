package command

import (
	"fmt"

	"github.com/pixil98/go-console/internal/console"
	"github.com/pixil98/go-console/internal/engine"
	"github.com/pixil98/go-console/internal/listener"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// World projection and narrative templates come from asset files.
	world, err := cfg.Storage.BuildWorld()
	if err != nil {
		return nil, fmt.Errorf("building world projection: %w", err)
	}
	renderer, err := cfg.Storage.BuildRenderer()
	if err != nil {
		return nil, fmt.Errorf("building narrative renderer: %w", err)
	}

	eng := engine.NewScripted()
	factory := &console.Factory{
		Capacity:   cfg.Console.queueCapacity(),
		Engine:     eng,
		NewContext: func() engine.Context { return eng.NewState() },
		World:      world,
		Renderer:   renderer,
	}

	workers := service.WorkerList{}

	// Optional event tap over embedded NATS.
	if cfg.Nats.Enabled {
		ns, err := cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		factory.Events = ns
		workers["nats"] = ns
	}

	// Root stdio console. Exit here terminates the process.
	if cfg.Console.Stdio {
		workers["console"] = factory.NewSession(console.Stdio(), console.WithProcess(console.OSProcess{}))
	}

	// Remote listeners, one console session per connection.
	if len(cfg.Listeners) > 0 {
		sm := listener.NewSessionManager(factory)
		listeners := make(service.WorkerList, len(cfg.Listeners))
		for i, l := range cfg.Listeners {
			lst, err := l.BuildListener(sm)
			if err != nil {
				return nil, fmt.Errorf("creating listener %d: %w", i, err)
			}
			listeners[fmt.Sprintf("listener-%d", i)] = lst
		}
		workers["listeners"] = &listeners
	}

	return workers, nil
}
