package session

import (
	"context"
	"errors"
	"fmt"
)

type Runner struct {
	machine    *Machine
	recognizer Recognizer
	dispatcher Dispatcher
}

func NewRunner(machine *Machine, recognizer Recognizer, dispatcher Dispatcher) *Runner {
	return &Runner{
		machine:    machine,
		recognizer: recognizer,
		dispatcher: dispatcher,
	}
}

// Run starts the session and loops listen, recognize, dispatch until the
// context ends, the session is stopped or the recognizer gives up. Stopping
// and closing the recognizer return nil.
func (r *Runner) Run(ctx context.Context, readiness Readiness) error {
	if err := r.machine.Start(readiness); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			r.machine.Stop()
			return err
		}

		transcript, err := r.recognizer.Listen(ctx)
		switch {
		case ctx.Err() != nil:
			r.machine.Stop()
			return ctx.Err()
		case errors.Is(err, ErrRecognizerClosed):
			r.machine.Stop()
			return nil
		case err != nil:
			if _, ferr := r.machine.Fail(err); ferr != nil {
				if errors.Is(ferr, ErrInvalidTransition) {
					return nil
				}
				return ferr
			}
			continue
		}

		if err := r.machine.EndOfUtterance(); err != nil {
			return nil
		}

		cmd, err := r.machine.Complete(transcript)
		if err != nil {
			return nil
		}

		if cmd != nil && r.dispatcher != nil {
			if err := r.dispatcher.Dispatch(ctx, *cmd); err != nil {
				r.machine.Advise(fmt.Sprintf("could not run %s: %v", cmd.Action, err))
			}
		}

		next, err := r.machine.Resume()
		if err != nil || next == StateIdle {
			return nil
		}
	}
}
