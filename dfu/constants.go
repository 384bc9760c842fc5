package dfu

// Request is a DFU class-specific request code.
type Request uint8

const (
	RequestDetach Request = iota
	RequestDnload
	RequestUpload
	RequestGetStatus
	RequestClrStatus
	RequestGetState
	RequestAbort
)

func (r Request) String() string {
	switch r {
	case RequestDetach:
		return "DFU_DETACH"
	case RequestDnload:
		return "DFU_DNLOAD"
	case RequestUpload:
		return "DFU_UPLOAD"
	case RequestGetStatus:
		return "DFU_GETSTATUS"
	case RequestClrStatus:
		return "DFU_CLRSTATUS"
	case RequestGetState:
		return "DFU_GETSTATE"
	case RequestAbort:
		return "DFU_ABORT"
	}
	return "UNKNOWN"
}

// bmRequestType values for class requests on the interface recipient.
const (
	hostToDevice uint8 = 0x21
	deviceToHost uint8 = 0xa1
)

// State is a DFU interface state as reported by DFU_GETSTATE and the
// status block.
type State uint8

const (
	AppIdle State = iota
	AppDetach
	DfuIdle
	DfuDnloadSync
	DfuDnBusy
	DfuDnloadIdle
	DfuManifestSync
	DfuManifest
	DfuManifestWaitReset
	DfuUploadIdle
	DfuError
)

func (s State) String() string {
	switch s {
	case AppIdle:
		return "appIDLE"
	case AppDetach:
		return "appDETACH"
	case DfuIdle:
		return "dfuIDLE"
	case DfuDnloadSync:
		return "dfuDNLOAD-SYNC"
	case DfuDnBusy:
		return "dfuDNBUSY"
	case DfuDnloadIdle:
		return "dfuDNLOAD-IDLE"
	case DfuManifestSync:
		return "dfuMANIFEST-SYNC"
	case DfuManifest:
		return "dfuMANIFEST"
	case DfuManifestWaitReset:
		return "dfuMANIFEST-WAIT-RESET"
	case DfuUploadIdle:
		return "dfuUPLOAD-IDLE"
	case DfuError:
		return "dfuERROR"
	}
	return "UNKNOWN"
}

// StatusCode is the bStatus field of the DFU_GETSTATUS block.
type StatusCode uint8

const (
	StatusOK StatusCode = iota
	StatusErrTarget
	StatusErrFile
	StatusErrWrite
	StatusErrErase
	StatusErrCheckErased
	StatusErrProg
	StatusErrVerify
	StatusErrAddress
	StatusErrNotDone
	StatusErrFirmware
	StatusErrVendor
	StatusErrUsbR
	StatusErrPOR
	StatusErrUnknown
	StatusErrStalledPkt
)

func (sc StatusCode) String() string {
	switch sc {
	case StatusOK:
		return "OK"
	case StatusErrTarget:
		return "errTARGET"
	case StatusErrFile:
		return "errFILE"
	case StatusErrWrite:
		return "errWRITE"
	case StatusErrErase:
		return "errERASE"
	case StatusErrCheckErased:
		return "errCHECK_ERASED"
	case StatusErrProg:
		return "errPROG"
	case StatusErrVerify:
		return "errVERIFY"
	case StatusErrAddress:
		return "errADDRESS"
	case StatusErrNotDone:
		return "errNOTDONE"
	case StatusErrFirmware:
		return "errFIRMWARE"
	case StatusErrVendor:
		return "errVENDOR"
	case StatusErrUsbR:
		return "errUSBR"
	case StatusErrPOR:
		return "errPOR"
	case StatusErrUnknown:
		return "errUNKNOWN"
	case StatusErrStalledPkt:
		return "errSTALLEDPKT"
	}
	return "UNKNOWN"
}

// Attributes is the bmAttributes field of the DFU functional descriptor.
type Attributes uint8

const (
	AttrCanDnload Attributes = 1 << iota
	AttrCanUpload
	AttrManifestationTolerant
	AttrWillDetach
)
