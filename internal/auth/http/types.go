package http

// Handler serves the signed-in operator's identity.
type Handler struct{}

func New() *Handler {
	return &Handler{}
}

type profile struct {
	UID             string `json:"uid"`
	Email           string `json:"email,omitempty"`
	DisplayIdentity string `json:"display_identity"`
}
