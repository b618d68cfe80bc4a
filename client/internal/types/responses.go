package types

// ------------------------------
// Response Types
// ------------------------------

// PageInfo mirrors the server's page metadata.
type PageInfo struct {
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
}

// PaginatedResponse wraps one page of booking records.
type PaginatedResponse struct {
	Items []Record `json:"items"`
	Page  PageInfo `json:"page"`
}
