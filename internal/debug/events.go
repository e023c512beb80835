package debug

// Delivery modes reported in FormatStartData.Mode
const (
	ModeStream = "stream"
	ModeBuffer = "buffer"
	ModeString = "string"
)

// FormatStartData contains information about the start of a format call.
type FormatStartData struct {
	Call     int    `json:"call"`
	Format   string `json:"format"`
	Mode     string `json:"mode"`
	Capacity int    `json:"capacity,omitempty"` // buffer mode only
	ArgCount int    `json:"arg_count"`
	Compiled bool   `json:"compiled"`
}

// DirectiveData describes one parsed directive as it is dispatched.
type DirectiveData struct {
	Call     int    `json:"call"`
	Offset   int    `json:"offset"`
	Text     string `json:"text"`
	Kind     string `json:"kind"`
	Verb     byte   `json:"verb"`
	Pad      byte   `json:"pad"`
	Width    int    `json:"width"`
	ArgIndex int    `json:"arg_index"` // -1 when no argument is consumed
}

// ArgMismatchData is emitted when an argument cannot serve its directive.
type ArgMismatchData struct {
	Call     int    `json:"call"`
	Offset   int    `json:"offset"`
	Verb     byte   `json:"verb"`
	ArgIndex int    `json:"arg_index"`
	ArgKind  string `json:"arg_kind"` // "MISSING" when the list ran out
}

// TruncateData is emitted once per buffer-mode call, at the first dropped byte.
type TruncateData struct {
	Call     int `json:"call"`
	Offset   int `json:"offset"` // format offset being rendered when the buffer filled
	Position int `json:"position"`
	Capacity int `json:"capacity"`
}

// FormatEndData contains information about the end of a format call.
type FormatEndData struct {
	Call         int   `json:"call"`
	BytesWritten int   `json:"bytes_written"`
	Dropped      int   `json:"dropped,omitempty"`
	Directives   int   `json:"directives"`
	ArgsUsed     int   `json:"args_used"`
	ElapsedUs    int64 `json:"elapsed_us"`
}

// ErrorData contains error information.
type ErrorData struct {
	Type    string                 `json:"type"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}
