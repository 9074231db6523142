package inbound

type SendEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
	From    string `json:"from"`
}

type SendEmailResponse struct {
	MessageID string `json:"messageId"`
	Message   string `json:"message"`
}
