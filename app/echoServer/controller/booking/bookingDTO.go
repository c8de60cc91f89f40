package booking

type CreateBookingReq struct {
	BookID   int64 `json:"book_id" validate:"required,gt=0"`
	Quantity int   `json:"quantity" validate:"required,gt=0"`
}

// UpdateBookingReq overwrites both fields unconditionally; an omitted field
// lands as its zero value. Status is taken verbatim, no transition rules.
type UpdateBookingReq struct {
	Quantity int    `json:"quantity"`
	Status   string `json:"status"`
}
