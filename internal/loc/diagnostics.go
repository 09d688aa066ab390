package loc

// DiagnosticCode identifies the precise reason behind a diagnostic so hosts
// can filter/suppress by code instead of matching message text.
type DiagnosticCode int

const (
	ErrParse                   DiagnosticCode = 1000
	ErrUnsupportedNode         DiagnosticCode = 1001
	ErrInvalidOptions          DiagnosticCode = 1002
	ErrUnsupportedSlotChild    DiagnosticCode = 1003
	WarnUseDirectiveDroppedSSR DiagnosticCode = 2000
	WarnRefDroppedSSR          DiagnosticCode = 2001
	WarnEventDroppedSSR        DiagnosticCode = 2002
	WarnInertOption            DiagnosticCode = 2003
)

// DiagnosticSeverity mirrors the four-tier severity a host diagnostics
// panel typically distinguishes.
type DiagnosticSeverity int

const (
	ErrorType DiagnosticSeverity = iota
	WarningType
	InformationType
	HintType
)

type DiagnosticLocation struct {
	File   string
	Line   int
	Column int
	Length int
}

type DiagnosticMessage struct {
	Code       DiagnosticCode
	Severity   DiagnosticSeverity
	Text       string
	Hint       string
	Suggestion string
	Location   *DiagnosticLocation
}

// ErrorWithRange is the one error shape the handler knows how to resolve
// back to a line/column: every fatal or degraded-path diagnostic the
// compiler raises carries a Range into the original source.
type ErrorWithRange struct {
	Code       DiagnosticCode
	Text       string
	Hint       string
	Suggestion string
	Range      Range
}

func (e *ErrorWithRange) Error() string {
	return e.Text
}

func (e *ErrorWithRange) ToMessage(location *DiagnosticLocation) DiagnosticMessage {
	return DiagnosticMessage{
		Code:       e.Code,
		Text:       e.Text,
		Hint:       e.Hint,
		Suggestion: e.Suggestion,
		Location:   location,
	}
}
