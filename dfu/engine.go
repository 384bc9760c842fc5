package dfu

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// Submit runs one control transfer to completion. The wait on the
// completion channel is bounded by the pool's URB timeout; once that
// expires the transfer is cancelled and Submit waits without bound for
// the transport to acknowledge the cancellation, so the handle is never
// released with a transfer still in flight. A handle allocated here is
// closed here; a caller-supplied Control.Transfer is left open.
func (d *Device) Submit(ctrl *Control) error {
	transfer := ctrl.Transfer
	owned := false
	if transfer == nil {
		var err error
		if transfer, err = d.hi.AllocTransfer(); err != nil {
			d.log.WithError(err).Error("Transfer allocation failed")
			return fmt.Errorf("%w: %v", ErrAllocation, err)
		}
		owned = true
	}
	ctrl.status = ErrIncomplete
	ctrl.count = 0
	done := make(chan completion, 1)
	err := transfer.Submit(ctrl.Setup, ctrl.Data, func(status error, count int) {
		done <- completion{status: status, count: count}
	})
	if err != nil {
		if owned {
			transfer.Close()
		}
		d.log.WithError(err).WithFields(log.Fields{
			"request": ctrl.Setup.Request,
			"value":   ctrl.Setup.Value,
		}).Error("Transfer submission rejected")
		return fmt.Errorf("submission rejected: %w", err)
	}
	var result completion
	timer := time.NewTimer(d.pool.URBTimeout())
	select {
	case result = <-done:
		timer.Stop()
	case <-timer.C:
		transfer.Cancel()
		result = <-done
		if result.status != nil {
			result.status = fmt.Errorf("%w: %v", ErrTimedOut, result.status)
		}
		if ctrl.Setup.Request != RequestAbort {
			d.log.WithFields(log.Fields{
				"request": ctrl.Setup.Request,
				"value":   ctrl.Setup.Value,
			}).Warnln("Transfer cancelled")
		}
	}
	ctrl.status = result.status
	ctrl.count = result.count
	if owned {
		transfer.Close()
	}
	if ctrl.status != nil && ctrl.Setup.Request != RequestAbort {
		d.log.WithError(ctrl.status).WithFields(log.Fields{
			"request": ctrl.Setup.Request,
			"value":   ctrl.Setup.Value,
		}).Warnln("Transfer failed")
	}
	return ctrl.status
}
