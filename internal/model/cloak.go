package model

// Cloak overrides the page title and icon. Empty strings mean "no override".
type Cloak struct {
	IconURL   string `json:"iconUrl" yaml:"iconUrl"`
	PageTitle string `json:"pageTitle" yaml:"pageTitle"`
}

// IsZero reports whether no override is set.
func (c Cloak) IsZero() bool {
	return c.IconURL == "" && c.PageTitle == ""
}

// CloakPatch is a partial cloak update. Nil fields are left unchanged.
type CloakPatch struct {
	IconURL   *string
	PageTitle *string
}

// Apply returns c with the patch merged in.
func (p CloakPatch) Apply(c Cloak) Cloak {
	if p.IconURL != nil {
		c.IconURL = *p.IconURL
	}
	if p.PageTitle != nil {
		c.PageTitle = *p.PageTitle
	}
	return c
}
