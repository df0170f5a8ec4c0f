package queue

// TicketMessage is the payload published for each created ticket and
// consumed by the processing worker.
type TicketMessage struct {
	TicketID    string `json:"ticket_id"`
	Description string `json:"description"`
}
