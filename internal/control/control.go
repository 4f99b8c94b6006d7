package control

// Request is one control-socket operation.
type Request struct {
	Op   string `json:"op"`
	Arg  string `json:"arg,omitempty"`
	Hint string `json:"hint,omitempty"`
}

// Status mirrors the daemon's state snapshot, with every display string
// already localized for the active language.
type Status struct {
	Running     bool    `json:"running"`
	UptimeSec   float64 `json:"uptime_sec"`
	Lang        string  `json:"lang"`
	Direction   string  `json:"direction"`
	Recording   bool    `json:"recording"`
	Loading     bool    `json:"loading"`
	StatusText  string  `json:"status_text"`
	RecordLabel string  `json:"record_label"`
	Transcript  string  `json:"transcript"`
}

// Result is the generic op response. Message is localized and user-facing;
// Text carries a transcript when the op produced one.
type Result struct {
	OK      bool   `json:"ok"`
	Text    string `json:"text,omitempty"`
	Message string `json:"message,omitempty"`
}
