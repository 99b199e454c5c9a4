package pagination

// Metadata is a point-in-time description of a Window.
type Metadata struct {
	Mode         string `json:"mode"`
	Total        int    `json:"total"`        // Total items known to exist, 0 until the first page
	TotalKnown   bool   `json:"total_known"`  // Whether Total came from a response
	Loaded       int    `json:"loaded"`       // Items currently revealed
	PageSize     int    `json:"page_size"`    // Items per page
	HasMore      bool   `json:"has_more"`     // Whether another page can be requested
	TotalPages   int    `json:"total_pages"`  // Pages needed for Total
	CurrentPage  int    `json:"current_page"` // Last page at least partially revealed
	FetchingMore bool   `json:"fetching_more"`
	Refreshing   bool   `json:"refreshing"`
}
