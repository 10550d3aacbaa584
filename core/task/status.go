package task

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/pkg/errors"

	"github.com/trezcool/trackademics/core"
)

const (
	eventComplete = "complete"
	eventReopen   = "reopen"
)

// newStatusMachine returns the status lifecycle of a record kind, starting at `current`:
// open (pending|upcoming) --complete--> completed --reopen--> open
func newStatusMachine(kind, current string) *fsm.FSM {
	open := OpenStatus(kind)
	return fsm.NewFSM(
		current,
		fsm.Events{
			{Name: eventComplete, Src: []string{open}, Dst: StatusCompleted},
			{Name: eventReopen, Src: []string{StatusCompleted}, Dst: open},
		},
		fsm.Callbacks{},
	)
}

// transition fires `event` on a record of `kind` currently in `status` and returns the new status.
func transition(ctx context.Context, kind, status, event string) (string, error) {
	sm := newStatusMachine(kind, status)
	if err := sm.Event(ctx, event); err != nil {
		var invalid fsm.InvalidEventError
		if errors.As(err, &invalid) {
			msg := fmt.Sprintf("%s is already %s", kind, status)
			if event == eventReopen && status == OpenStatus(kind) {
				msg = fmt.Sprintf("%s is not completed", kind)
			}
			return "", core.NewValidationError(errors.New(msg), core.FieldError{Field: "status", Error: msg})
		}
		return "", errors.Wrapf(err, "%s %s", event, kind)
	}
	return sm.Current(), nil
}
