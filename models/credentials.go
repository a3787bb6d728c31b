package models

// Credentials is the form payload of the register and login views.
type Credentials struct {
	Email       string `json:"email"`
	Password    string `json:"-"`
	DisplayName string `json:"display_name,omitempty"`
}
