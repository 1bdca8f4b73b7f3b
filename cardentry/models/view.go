package models

// CardRow is a card prepared for display.
type CardRow struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	CardNumber  string `json:"cardNumber"`
	CreditLimit string `json:"creditLimit"`
	Balance     string `json:"balance"`
}

// View is the snapshot handed to the presentation layer after every transition.
type View struct {
	Cards        []CardRow     `json:"cards"`
	Empty        bool          `json:"empty"`
	Placeholder  string        `json:"placeholder,omitempty"`
	Draft        DraftInput    `json:"draft"`
	Errors       FieldErrors   `json:"errors"`
	RequestError *RequestError `json:"requestError,omitempty"`
	Loading      bool          `json:"loading"`
	SubmitLabel  string        `json:"submitLabel"`
	Currency     string        `json:"currency"`
}
