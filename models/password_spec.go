package models

// PasswordSpec describes the requested shape of a generated password.
// A zero-value spec is filled with defaults by the password service.
type PasswordSpec struct {
	Length  int  `json:"length"`
	Upper   bool `json:"upper"`
	Lower   bool `json:"lower"`
	Digits  bool `json:"digits"`
	Symbols bool `json:"symbols"`
}
