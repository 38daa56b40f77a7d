package dto

type RegionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ListRegionsResponse struct {
	Regions []RegionResponse `json:"regions"`
}

type TourResponse struct {
	ID            int     `json:"id"`
	RegionID      string  `json:"region_id"`
	Name          string  `json:"name"`
	Cost          float64 `json:"cost"`
	DurationDays  int     `json:"duration_days"`
	AttractionIDs []int   `json:"attraction_ids"`
}

type ListToursResponse struct {
	Tours []TourResponse `json:"tours"`
}
