package inbound

import "net/http"

type AbcResponse struct {
	Msg       string `json:"message"`
	RequestID string `json:"requestId"`
}

func (AbcResponse) StatusCode() int {
	return http.StatusNotFound
}

func (r AbcResponse) Message() string {
	return r.Msg
}
