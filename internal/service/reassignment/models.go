package reassignment

// Notification письмо хозяину гостя о результате переселения.
// Пустой Recipient означает, что отправлять некому.
type Notification struct {
	Recipient string
	Subject   string
	Body      string
}

// Result итог попытки переселения одного гостя.
// AssignedRoomID nil - свободной комнаты не нашлось, гость остаётся
// без места и хозяину уходит просьба разобраться вручную.
type Result struct {
	AssignedRoomID *int64
	Notification   Notification
}

// Assigned сообщает, нашлась ли комната
func (r *Result) Assigned() bool {
	return r.AssignedRoomID != nil
}
