package category

type Category struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
}

type CreateParams struct {
	UserID int64
	Name   string
}
