package dfu

// HostInterface is the host-stack side of a claimed DFU interface. The
// transfer engine drives control requests through it.
type HostInterface interface {
	String() string
	InterfaceNumber() int
	DMACapable() bool
	AllocTransfer() (Transfer, error)
}

// Transfer is one asynchronous control transfer handle. Submit starts the
// transfer and returns immediately; done is invoked exactly once with the
// terminal status and byte count. Cancel aborts a submitted transfer and
// guarantees the pending done callback still fires.
type Transfer interface {
	Submit(setup SetupPacket, data []byte, done func(status error, count int)) error
	Cancel()
	Close()
}

// Port is a discovered DFU interface: the claimed handle plus the raw
// functional descriptor read during discovery.
type Port interface {
	HostInterface
	Descriptor() []byte
	Close() error
}

// Scanner enumerates DFU runtime interfaces currently on the bus. Scan
// claims and returns interfaces not yet tracked by the pool, and reports
// the keys of every DFU interface present so callers can detect removals.
type Scanner interface {
	Scan(pool *Pool) (found []Port, present []string, err error)
	Close() error
}
