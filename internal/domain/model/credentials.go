package model

// Credentials identify a bridge and the whitelisted user obtained from it
// during pairing.
type Credentials struct {
	Host       string `json:"host"`
	Credential string `json:"credential"`
}

func (c Credentials) IsZero() bool {
	return c.Host == "" || c.Credential == ""
}
