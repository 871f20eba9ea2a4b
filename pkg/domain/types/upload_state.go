package types

// UploadState is the state of an upload job in the processing state machine.
//
//	Processing -> Ready | Failed | TimedOut
type UploadState string

const (
	UploadStateProcessing UploadState = "processing"
	UploadStateReady      UploadState = "ready"
	UploadStateFailed     UploadState = "failed"
	UploadStateTimedOut   UploadState = "timed_out"
)

// IsTerminal reports whether no further poll is needed
func (s UploadState) IsTerminal() bool {
	switch s {
	case UploadStateReady, UploadStateFailed, UploadStateTimedOut:
		return true
	default:
		return false
	}
}

func (s UploadState) String() string {
	return string(s)
}
