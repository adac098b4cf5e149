package models

// Contact represents a person an agent communicates with. CRUD for
// contacts lives in the dashboard layer; the telephony core only reads
// them to resolve destinations and attribute inbound events.
type Contact struct {
	BaseCompanyModel
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `gorm:"index" json:"phone"`
	Email     string `json:"email,omitempty"`
	Notes     string `gorm:"type:text" json:"notes,omitempty"`
}

// FullName returns the contact's display name
func (c *Contact) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
