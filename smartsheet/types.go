package smartsheet

// SheetSummary is the abbreviated sheet returned by the 'list sheets' call.
type SheetSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	AccessLevel string `json:"accessLevel,omitempty"`
	Permalink   string `json:"permalink,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	ModifiedAt  string `json:"modifiedAt,omitempty"`
}

// Sheet is the subset of a Smartsheet sheet needed to walk the cell grid.
type Sheet struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Permalink   string   `json:"permalink,omitempty"`
	TotalRows   int      `json:"totalRowCount,omitempty"`
	Columns     []Column `json:"columns"`
	Rows        []Row    `json:"rows"`
	AccessLevel string   `json:"accessLevel,omitempty"`
}

type Column struct {
	ID    int64  `json:"id"`
	Index int    `json:"index"`
	Title string `json:"title"`
	Type  string `json:"type,omitempty"`
}

type Row struct {
	ID        int64 `json:"id"`
	RowNumber int   `json:"rowNumber"`
}

type indexResult[T any] struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	TotalCount int `json:"totalCount"`
	Data       []T `json:"data"`
}
