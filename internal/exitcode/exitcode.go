package exitcode

const (
	Success         = 0
	UsageError      = 1 // bad flags or rules file; nothing was read
	ValidationError = 2 // unparseable table or missing required column
	ReadError       = 3 // input could not be opened or read
	WriteError      = 4 // output could not be written
	TransformError  = 5 // a cleaning step failed
)
