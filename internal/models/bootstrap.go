package models

// BootstrapResult holds the records created by the demo bootstrap
type BootstrapResult struct {
	User         *User         `json:"user"`
	Categories   []Category    `json:"categories"`
	Transactions []Transaction `json:"transactions"`
}
