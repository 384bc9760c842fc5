package dfu

import "errors"

var (
	ErrInvalidDescriptor = errors.New("invalid DFU functional descriptor")
	ErrTooManyDevices    = errors.New("too many DFU devices")
	ErrAllocation        = errors.New("transfer allocation failed")
	ErrTimedOut          = errors.New("transfer timed out")
	ErrIncomplete        = errors.New("transfer incomplete")
	ErrInvalidCommand    = errors.New("invalid command")
)
