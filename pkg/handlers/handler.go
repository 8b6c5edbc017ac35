package handlers

// Handler names, used in logs and errors.
const (
	TestCaseStartName    = "test-case-start"
	CompleteFileNameName = "complete-file-name"
	FillName             = "fill"
	LastLineName         = "last-line"
	DefaultName          = "default"
)

// Handler processes one line of a script.
type Handler interface {
	// Name returns the unique name of this handler
	Name() string

	// Process handles line. When cont is true, next is the text the next
	// handler in the chain receives; otherwise the handler has emitted
	// everything for this line.
	Process(ctx *Context, line string) (next string, cont bool, err error)
}
