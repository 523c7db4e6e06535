package entity

// Fix is a single reported position-and-accuracy sample. Only the most
// recent fix is retained; every report replaces the previous one
// wholesale.
type Fix struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Accuracy float64 `json:"accuracy"` // meters
}
