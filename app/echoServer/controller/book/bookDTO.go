package book

type CreateBookReq struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	ISBN   string `json:"isbn" validate:"required"`
}

// UpdateBookReq carries no required tags: an omitted field overwrites the
// stored value with its zero value (full replace, not merge).
type UpdateBookReq struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

type AddCategoryReq struct {
	CategoryName string `json:"category_name" validate:"required"`
}
