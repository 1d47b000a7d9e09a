package dto

type PingResponse struct {
	Message *string `json:"message,omitempty"`
}

type Error struct {
	Error string `json:"error"`
}
