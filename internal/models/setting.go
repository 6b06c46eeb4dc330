package models

// SMTPSettings is the mail relay configuration stored under the
// smtp_settings key. The API only stores it; nothing here sends mail.
type SMTPSettings struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Secure   bool   `json:"secure"`
	Username string `json:"username"`
	Password string `json:"password"`
}
