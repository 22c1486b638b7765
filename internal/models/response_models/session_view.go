package response_models

const (
	FieldKindSelect = "select"
	FieldKindText   = "text"

	DownloadFilename = "ad-image.png"
)

// SessionView is what a client needs to render the current wizard step.
type SessionView struct {
	ID            string      `json:"id"`
	Step          string      `json:"step"`
	InitialPrompt string      `json:"initial_prompt"`
	IsLoading     bool        `json:"is_loading"`
	ErrorMessage  string      `json:"error_message,omitempty"`
	CanSubmit     bool        `json:"can_submit"`
	Fields        []FormField `json:"fields,omitempty"`
	Result        *AdResult   `json:"result,omitempty"`
}

type FormField struct {
	Index   int      `json:"index"`
	Label   string   `json:"label"`
	Kind    string   `json:"kind"`
	Options []string `json:"options,omitempty"`
	Value   string   `json:"value"`
}

type AdResult struct {
	ImageURL   string       `json:"image_url"`
	Caption    string       `json:"caption,omitempty"`
	Download   DownloadLink `json:"download"`
	CanRestart bool         `json:"can_restart"`
}

type DownloadLink struct {
	Href     string `json:"href"`
	Filename string `json:"filename"`
}

type SessionCreated struct {
	Token   string      `json:"token"`
	Session SessionView `json:"session"`
}
