package helpers

type EnhancedClaims struct {
	*CustomClaims
	Role        string `json:"role"`
	UserID      string `json:"id"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

func (ec *EnhancedClaims) IsAdmin() bool {
	return ec.Role == "admin"
}

func (ec *EnhancedClaims) IsOrganizer() bool {
	return ec.Role == "organizer"
}

func (ec *EnhancedClaims) CanCreateEvents() bool {
	return ec.IsAdmin() || ec.IsOrganizer()
}

func (ec *EnhancedClaims) IsOwner(userID string) bool {
	return ec.UserID == userID
}

func (ec *EnhancedClaims) GetSafeRole() string {
	if ec.Role == "" {
		return "attendee"
	}
	return ec.Role
}
